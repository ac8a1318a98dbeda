package interop

// Policy controls which capability categories a Resolver exposes. A nil
// Allowed set means "allow all"; Denied always wins.
type Policy struct {
	Allowed map[Capability]bool
	Denied  map[Capability]bool
}

// PermissivePolicy allows every category.
func PermissivePolicy() *Policy {
	return &Policy{}
}

// RestrictedPolicy allows only the listed categories.
func RestrictedPolicy(allowed ...Capability) *Policy {
	m := make(map[Capability]bool, len(allowed))
	for _, c := range allowed {
		m[c] = true
	}
	return &Policy{Allowed: m}
}

// Deny adds a category to the deny list.
func (p *Policy) Deny(c Capability) {
	if p.Denied == nil {
		p.Denied = make(map[Capability]bool)
	}
	p.Denied[c] = true
}

// Allows reports whether c is visible under the policy.
func (p *Policy) Allows(c Capability) bool {
	if p == nil {
		return true
	}
	if p.Denied[c] {
		return false
	}
	return p.Allowed == nil || p.Allowed[c]
}

// restricts reports whether applying the policy can change anything.
func (p *Policy) restricts() bool {
	return p != nil && (p.Allowed != nil || len(p.Denied) > 0)
}

func (p *Policy) apply(e *Exports) {
	for c := Capability(0); c < numCapabilities; c++ {
		if !p.Allows(c) {
			e.without(c)
		}
	}
}
