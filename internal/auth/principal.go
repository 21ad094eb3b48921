package auth

// Kind discriminates the two principal classes. They share one credential
// shape but are never interchangeable. KindProvider marks calls made by a
// payment provider and never comes from a session token.
type Kind int

const (
	KindCustomer Kind = iota + 1
	KindPartner
	KindProvider
)

func (k Kind) String() string {
	switch k {
	case KindCustomer:
		return "customer"
	case KindPartner:
		return "partner"
	case KindProvider:
		return "provider"
	}
	return "unknown"
}

// Principal is either Customer(id) or Partner(id). The zero value is
// neither and is never attached to a request.
type Principal struct {
	kind Kind
	id   string
}

func Customer(id string) Principal { return Principal{kind: KindCustomer, id: id} }

func Partner(id string) Principal { return Principal{kind: KindPartner, id: id} }

func Provider(name string) Principal { return Principal{kind: KindProvider, id: name} }

func (p Principal) Kind() Kind { return p.kind }

func (p Principal) ID() string { return p.id }

func (p Principal) IsCustomer() bool { return p.kind == KindCustomer && p.id != "" }

func (p Principal) IsPartner() bool { return p.kind == KindPartner && p.id != "" }

// Is reports whether p is the given customer or partner.
func (p Principal) Is(kind Kind, id string) bool {
	return p.kind == kind && p.id != "" && p.id == id
}
