package tool

// Registry defines the interface for tool registration and lookup.
// Implementations must preserve registration order in List and Names,
// because policy validation order and help text depend on it, and must
// be safe for concurrent use.
type Registry interface {
	// Register adds a tool. Fails with ErrToolExists on duplicate names.
	Register(t Tool) error

	// Replace adds a tool, overriding any existing registration with the
	// same name. The original registration position is kept on override.
	Replace(t Tool)

	// Get retrieves a tool by name.
	Get(name string) (Tool, bool)

	// List returns all registered tools in registration order.
	List() []Tool

	// Names returns all registered tool names in registration order.
	Names() []string

	// Has checks if a tool is registered.
	Has(name string) bool

	// Unregister removes a tool. Fails with ErrToolNotFound if absent.
	Unregister(name string) error

	// Count returns the number of registered tools.
	Count() int
}
