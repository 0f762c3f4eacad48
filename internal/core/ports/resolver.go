package ports

// DependencyResolver extracts and resolves a module's load edges.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Direct returns the module's direct dependency paths in
	// first-occurrence order, de-duplicated, resolved relative to the
	// module's directory.
	Direct(modulePath string, src []byte) ([]string, error)

	// Transitive returns the full dependency closure of the module,
	// excluding the module itself. Cycles are short-circuited on second
	// visit rather than reported.
	Transitive(modulePath string) ([]string, error)

	// Dependents returns the known modules that depend, directly or
	// transitively, on the given path. The reverse mapping reflects the
	// most recent resolution of each module.
	Dependents(path string) []string
}
