package resolver

// Chain tries each child resolver in order. A not-found from one child
// falls through to the next; any other error is fatal and propagates
// immediately, per the chain-of-responsibility behavior the coordinator
// expects from its file resolver.
type Chain struct {
	resolvers []Resolver
}

// NewChain returns a Chain that tries rs in order.
func NewChain(rs ...Resolver) *Chain {
	return &Chain{resolvers: rs}
}

func (c *Chain) ResolvePath(fsPath string) (string, bool) {
	for _, r := range c.resolvers {
		if name, ok := r.ResolvePath(fsPath); ok {
			return name, true
		}
	}
	return "", false
}

func (c *Chain) Open(name string) (*File, error) {
	for _, r := range c.resolvers {
		f, err := r.Open(name)
		if err == nil {
			return f, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
	}
	return nil, &NotFoundError{Name: name}
}
