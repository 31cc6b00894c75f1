package vault

import "github.com/hdvault/hdvault/pkg/hdkey"

// SeedProvider is the external key store the resolver starts from. An
// implementation resolves a file reference to the root public node of
// a derivation tree; raw seed material never crosses this interface.
type SeedProvider interface {
	RootNode(file File) (hdkey.Node, error)
}
