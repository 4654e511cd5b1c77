package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/rolodex/pkg/fields"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// seedCoreFields inserts any built-in field an entity is missing. Existing
// rows, including custom fields, are left alone, so seeding runs on every
// attach.
func seedCoreFields(ctx context.Context, db *sql.DB, now time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entity := range types.Entities {
		for i, def := range fields.Core(entity) {
			def.CreatedAt = now
			if err := insertField(ctx, tx, entity, def, i); err != nil {
				return fmt.Errorf("%s.%s: %w", entity, def.ID, err)
			}
		}
	}
	return tx.Commit()
}

var demoUsers = []types.User{
	{FirstName: "Avery", LastName: "Stone", Email: "avery@rolodex.test"},
	{FirstName: "Blake", LastName: "Moreno", Email: "blake@rolodex.test"},
	{FirstName: "Casey", LastName: "Nakamura", Email: "casey@rolodex.test"},
	{FirstName: "Devon", LastName: "Okafor", Email: "devon@rolodex.test"},
}

var (
	demoFirst     = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Frances", "Ken", "Margaret", "Dennis", "Radia", "Linus", "Sophie", "Tim", "Hedy", "Niklaus", "Katherine", "John", "Ellen"}
	demoLast      = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Allen", "Thompson", "Hamilton", "Ritchie", "Perlman", "Torvalds", "Wilson", "Berners-Lee", "Lamarr", "Wirth", "Johnson", "McCarthy", "Ochoa"}
	demoCompanies = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Vandelay", "Stark", "Wayne", "Tyrell", "Soylent", "Cyberdyne", "Wonka"}
	demoTitles    = []string{"CEO", "CTO", "VP of Operations", "Head of Sales", "Engineer", "Buyer"}
	demoStages    = []string{"Qualification", "Discovery", "Proposal", "Negotiation", "Closed won", "Closed lost"}
)

// demoCounts is the number of demo records per entity.
var demoCounts = map[types.EntityKey]int{
	types.EntityLeads:         57,
	types.EntityContacts:      31,
	types.EntityDeals:         24,
	types.EntityOrganizations: len(demoCompanies),
}

// seedDemoData fills an empty store with demo users and records. It does
// nothing when any user already exists and returns the number of records
// written.
func seedDemoData(ctx context.Context, db *sql.DB, now time.Time) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var owners []int64
	for _, u := range demoUsers {
		id, err := insertUser(ctx, tx, u)
		if err != nil {
			return 0, fmt.Errorf("user %s: %w", u.Email, err)
		}
		owners = append(owners, id)
	}

	written := 0
	for _, entity := range types.Entities {
		for i := range demoCounts[entity] {
			values := demoValues(entity, i)
			values["assigned_user_id"] = owners[i%len(owners)]
			if _, err := insertRecord(ctx, tx, entity, values, now); err != nil {
				return 0, fmt.Errorf("%s record %d: %w", entity, i, err)
			}
			written++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

func demoValues(entity types.EntityKey, i int) map[string]any {
	first := demoFirst[i%len(demoFirst)]
	last := demoLast[(i*7)%len(demoLast)]
	company := demoCompanies[(i*5)%len(demoCompanies)]
	email := fmt.Sprintf("%s.%s@%s.example", strings.ToLower(first), strings.ToLower(last), strings.ToLower(company))

	switch entity {
	case types.EntityLeads:
		return map[string]any{"firstname": first, "lastname": last, "company": company, "email": email}
	case types.EntityContacts:
		return map[string]any{
			"firstname":  first,
			"lastname":   last,
			"title":      demoTitles[i%len(demoTitles)],
			"email":      email,
			"phone":      fmt.Sprintf("(555) 01%d-%04d", i%10, 1000+i*37),
			"account_id": int64(i%len(demoCompanies) + 1),
		}
	case types.EntityDeals:
		return map[string]any{
			"dealname": fmt.Sprintf("%s %s", company, []string{"renewal", "expansion", "pilot"}[i%3]),
			"amount":   float64(1500 + (i*1337)%48000),
			"stage":    demoStages[i%len(demoStages)],
		}
	case types.EntityOrganizations:
		c := demoCompanies[i%len(demoCompanies)]
		return map[string]any{
			"accountname": c + " Inc.",
			"website":     strings.ToLower(c) + ".example",
			"phone":       fmt.Sprintf("(555) 02%d-%04d", i%10, 2000+i*53),
		}
	}
	return map[string]any{}
}
