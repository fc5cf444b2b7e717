package ledger

// Package is a purchasable bundle of credits.
type Package struct {
	ID      string
	Credits int64
	Price   string
}

// Gift is a catalog item a member can send to their partner.
type Gift struct {
	ID    string
	Name  string
	Price int64
}

var packages = []Package{
	{ID: "p1", Credits: 100, Price: "$9.99"},
	{ID: "p2", Credits: 500, Price: "$44.99"},
	{ID: "p3", Credits: 2000, Price: "$149.99"},
}

var gifts = []Gift{
	{ID: "rose", Name: "Rose Touch", Price: 10},
	{ID: "spark", Name: "Love Spark", Price: 50},
	{ID: "flame", Name: "Flame", Price: 100},
	{ID: "gem", Name: "Desire Gem", Price: 200},
	{ID: "kiss", Name: "Midnight Kiss", Price: 500},
	{ID: "crown", Name: "Intima Crown", Price: 1000},
	{ID: "bond", Name: "Infinity Bond", Price: 5000},
}

func Packages() []Package {
	return append([]Package(nil), packages...)
}

func Gifts() []Gift {
	return append([]Gift(nil), gifts...)
}

func LookupPackage(id string) (Package, error) {
	for _, p := range packages {
		if p.ID == id {
			return p, nil
		}
	}

	return Package{}, ErrUnknownPackage
}

func LookupGift(id string) (Gift, error) {
	for _, g := range gifts {
		if g.ID == id {
			return g, nil
		}
	}

	return Gift{}, ErrUnknownGift
}
