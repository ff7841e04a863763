package entities

import "github.com/KirkDiggler/rpg-toolkit/core"

// Everything the repository owns satisfies core.Entity.
var (
	_ core.Entity = (*User)(nil)
	_ core.Entity = (*Task)(nil)
	_ core.Entity = (*Party)(nil)
	_ core.Entity = (*Quest)(nil)
)
