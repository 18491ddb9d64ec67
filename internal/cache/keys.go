package cache

import "time"

// TTLs dos agregados. Estatísticas mudam com cada escrita; o resumo de
// doações muda devagar.
const (
	StatsTTL        = 1800 * time.Second
	DonationInfoTTL = 3600 * time.Second
)

// Chaves de agregados.
const (
	KeyDashboardStats = "stats:dashboard"
	KeyMemberStats    = "stats:members"
	KeyDonationStats  = "stats:donations"
	KeyDonationInfo   = "stats:donations:info"
)

// entityKeys is the explicit index from entity name to the literal cache keys
// a write to that entity affects. Invalidation reads this index instead of
// scanning the keyspace.
var entityKeys = map[string][]string{
	"members":   {KeyMemberStats, KeyDashboardStats},
	"donations": {KeyDonationStats, KeyDonationInfo, KeyDashboardStats},
	"events":    {KeyDashboardStats},
	"visitors":  {KeyDashboardStats},
	"visits":    {KeyDashboardStats},
}

// KeysFor returns the registered cache keys for an entity. Entities without
// cached aggregates return nil.
func KeysFor(entity string) []string {
	return entityKeys[entity]
}
