package invocation

// mockCommand is a simple mock implementation of the Command interface for testing
type mockCommand struct {
	name string
	inv  Invocation
}

func (m *mockCommand) Name() string {
	return m.name
}

func (m *mockCommand) Invocation() Invocation {
	return m.inv
}

// newMockCommand creates a mock command producing a fixed invocation
func newMockCommand(name string, inv Invocation) *mockCommand {
	return &mockCommand{
		name: name,
		inv:  inv,
	}
}
