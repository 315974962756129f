package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/etnz/networth/renderer"
	"github.com/google/subcommands"
)

// draftTypes are the product types that support manual drafts.
var draftTypes = []string{"accounts", "deposits", "stocks", "funds"}

// synced is an entry of the snapshot with the entity holding it.
type synced[E any] struct {
	entityID string
	entry    E
}

// syncedEntries indexes the entries of product by id.
func syncedEntries[E networth.Valued](positions *networth.EntitiesPosition, product func(*networth.Products) *networth.Entries[E]) map[string]synced[E] {
	m := make(map[string]synced[E])
	for _, key := range positions.Keys() {
		gp := positions.Positions[key]
		entityID := gp.Entity.ID
		if entityID == "" {
			entityID = key
		}
		for _, e := range product(&gp.Products).Entries {
			if id := e.EntryID(); id != "" {
				m[id] = synced[E]{entityID: entityID, entry: e}
			}
		}
	}
	return m
}

// baseline drops the entities of entries, for opening a draft session.
func baseline[E any](entries map[string]synced[E]) map[string]E {
	m := make(map[string]E, len(entries))
	for id, e := range entries {
		m[id] = e.entry
	}
	return m
}

// findEntity returns the id of the entity matching name by id or name.
func findEntity(positions *networth.EntitiesPosition, name string) (string, bool) {
	for _, key := range positions.Keys() {
		e := positions.Positions[key].Entity
		if key == name || e.ID == name || strings.EqualFold(e.Name, name) {
			if e.ID != "" {
				return e.ID, true
			}
			return key, true
		}
	}
	return "", false
}

// upsertDraft applies edit to the entry id, drafting it first if needed. An
// empty id creates a local entry in entity, a new entity if none matches.
// It returns the id of the draft.
func upsertDraft[E networth.Valued](s *networth.DraftSession[E], positions *networth.EntitiesPosition, entries map[string]synced[E], id, entity string, edit func(*E)) (string, error) {
	if id != "" {
		if s.EditByLocalID(id, edit) || s.EditByOriginalID(id, edit) {
			return id, nil
		}
		e, ok := entries[id]
		if !ok {
			return "", fmt.Errorf("unknown entry %q", id)
		}
		s.Override(id, e.entityID, e.entry)
		s.EditByOriginalID(id, edit)
		return id, nil
	}

	if entity == "" {
		return "", fmt.Errorf("a new entry needs an -entity")
	}
	var entry E
	edit(&entry)
	if entityID, ok := findEntity(positions, entity); ok {
		return s.Add(entityID, entity, entry), nil
	}
	return s.AddEntity(entity, entry), nil
}

// deleteDraft deletes the local draft id, or the synced entry id.
func deleteDraft[E any](s *networth.DraftSession[E], entries map[string]synced[E], id string) error {
	if s.DeleteByLocalID(id) {
		return nil
	}
	if _, ok := entries[id]; !ok {
		return fmt.Errorf("unknown entry %q", id)
	}
	s.DeleteByOriginalID(id)
	return nil
}

// listDrafts renders the merged entries of a product type.
func listDrafts[E networth.Valued](title string, positions *networth.EntitiesPosition, product func(*networth.Products) *networth.Entries[E], set networth.DraftSet[E]) string {
	var all []E
	for _, key := range positions.Keys() {
		gp := positions.Positions[key]
		all = append(all, product(&gp.Products).Entries...)
	}
	s := set.Session(networth.SyncedEntries(positions, product))
	return renderer.DraftsMarkdown(title, networth.MergeEntries(all, false, s, nil), s.Deleted())
}

// draftFiles decodes the snapshot without drafts, and the drafts.
func draftFiles() (*networth.Snapshot, *networth.Drafts, error) {
	s, err := networth.DecodeSnapshotFile(*snapshotFile)
	if err != nil {
		return nil, nil, err
	}
	d, err := networth.DecodeDraftsFile(*draftsFile)
	if err != nil {
		return nil, nil, err
	}
	return s, d, nil
}

type draftsCmd struct {
	typ string
}

func (*draftsCmd) Name() string     { return "drafts" }
func (*draftsCmd) Synopsis() string { return "list the entries with their manual drafts" }
func (*draftsCmd) Usage() string {
	return `nw drafts [-type accounts|deposits|stocks|funds]

  Lists the synced entries merged with the manual drafts, flagging the edited,
  new and deleted ones.
`
}

func (c *draftsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Only list this product type")
}

func (c *draftsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, d, err := draftFiles()
	if err != nil {
		return fail("Error loading drafts: %v", err)
	}
	var b strings.Builder
	for _, typ := range draftTypes {
		if c.typ != "" && c.typ != typ {
			continue
		}
		switch typ {
		case "accounts":
			b.WriteString(listDrafts("Accounts", &s.Positions, networth.AccountsOf, d.Accounts))
		case "deposits":
			b.WriteString(listDrafts("Deposits", &s.Positions, networth.DepositsOf, d.Deposits))
		case "stocks":
			b.WriteString(listDrafts("Stocks", &s.Positions, networth.StocksOf, d.Stocks))
		case "funds":
			b.WriteString(listDrafts("Funds", &s.Positions, networth.FundsOf, d.Funds))
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return fail("unknown product type %q, use one of %s", c.typ, strings.Join(draftTypes, ", "))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type accountCmd struct {
	id, entity, name, currency string
	total                      string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "draft an account balance" }
func (*accountCmd) Usage() string {
	return `nw account [-id <id>] [-entity <entity>] [-name <name>] -total <amount> [-currency <cur>]

  Overrides the account <id>, or creates a manual account in <entity>.
  The entity is created if it does not exist.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the account to override, or local id of a draft")
	f.StringVar(&c.entity, "entity", "", "Entity of a new account")
	f.StringVar(&c.name, "name", "", "Name of the account")
	f.StringVar(&c.total, "total", "", "Balance of the account")
	f.StringVar(&c.currency, "currency", "", "Currency of the balance")
}

func (c *accountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, d, err := draftFiles()
	if err != nil {
		return fail("Error loading drafts: %v", err)
	}
	total := networth.ParseDecimal(c.total)
	if c.total != "" && !total.IsFinite() {
		return fail("invalid -total %q", c.total)
	}

	entries := syncedEntries(&s.Positions, networth.AccountsOf)
	session := d.Accounts.Session(baseline(entries))
	id, err := upsertDraft(session, &s.Positions, entries, c.id, c.entity, func(e *networth.AccountEntry) {
		if c.name != "" {
			e.Name = c.name
		}
		if c.total != "" {
			e.Total = total
		}
		if c.currency != "" {
			e.Currency = strings.ToUpper(c.currency)
		}
	})
	if err != nil {
		return fail("Error drafting account: %v", err)
	}
	d.Accounts = networth.DraftSetOf(session)
	if err := networth.EncodeDraftsFile(*draftsFile, d); err != nil {
		return fail("Error saving drafts: %v", err)
	}
	fmt.Println(id)
	return subcommands.ExitSuccess
}

type depositCmd struct {
	id, entity, name, currency string
	amount, rate, maturity     string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "draft a term deposit" }
func (*depositCmd) Usage() string {
	return `nw deposit [-id <id>] [-entity <entity>] [-name <name>] -amount <amount> [-rate <rate>] [-maturity <date>] [-currency <cur>]

  Overrides the deposit <id>, or creates a manual deposit in <entity>.
  The rate is a yearly fraction: 0.03 is 3%.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the deposit to override, or local id of a draft")
	f.StringVar(&c.entity, "entity", "", "Entity of a new deposit")
	f.StringVar(&c.name, "name", "", "Name of the deposit")
	f.StringVar(&c.amount, "amount", "", "Amount of the deposit")
	f.StringVar(&c.rate, "rate", "", "Yearly interest rate, as a fraction")
	f.StringVar(&c.maturity, "maturity", "", "Maturity date (YYYY-MM-DD)")
	f.StringVar(&c.currency, "currency", "", "Currency of the amount")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, d, err := draftFiles()
	if err != nil {
		return fail("Error loading drafts: %v", err)
	}
	amount, rate := networth.ParseDecimal(c.amount), networth.ParseDecimal(c.rate)
	if c.amount != "" && !amount.IsFinite() {
		return fail("invalid -amount %q", c.amount)
	}
	if c.rate != "" && !rate.IsFinite() {
		return fail("invalid -rate %q", c.rate)
	}
	var maturity *date.Date
	if c.maturity != "" {
		m, err := date.Parse(c.maturity)
		if err != nil {
			return fail("invalid -maturity: %v", err)
		}
		maturity = &m
	}

	entries := syncedEntries(&s.Positions, networth.DepositsOf)
	session := d.Deposits.Session(baseline(entries))
	id, err := upsertDraft(session, &s.Positions, entries, c.id, c.entity, func(e *networth.DepositEntry) {
		if c.name != "" {
			e.Name = c.name
		}
		if c.amount != "" {
			e.Amount = amount
		}
		if c.rate != "" {
			e.InterestRate = rate
		}
		if maturity != nil {
			e.Maturity = maturity
		}
		if c.currency != "" {
			e.Currency = strings.ToUpper(c.currency)
		}
	})
	if err != nil {
		return fail("Error drafting deposit: %v", err)
	}
	d.Deposits = networth.DraftSetOf(session)
	if err := networth.EncodeDraftsFile(*draftsFile, d); err != nil {
		return fail("Error saving drafts: %v", err)
	}
	fmt.Println(id)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	typ string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete entries or drafts" }
func (*deleteCmd) Usage() string {
	return `nw delete [-type accounts|deposits|stocks|funds] <id>...

  Deletes local drafts, or hides synced entries, by id.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "accounts", "Product type of the entries")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(f.Output(), c.Usage())
		return subcommands.ExitUsageError
	}
	s, d, err := draftFiles()
	if err != nil {
		return fail("Error loading drafts: %v", err)
	}
	p := &s.Positions
	for _, id := range f.Args() {
		switch c.typ {
		case "accounts":
			d.Accounts, err = deleteIn(d.Accounts, syncedEntries(p, networth.AccountsOf), id)
		case "deposits":
			d.Deposits, err = deleteIn(d.Deposits, syncedEntries(p, networth.DepositsOf), id)
		case "stocks":
			d.Stocks, err = deleteIn(d.Stocks, syncedEntries(p, networth.StocksOf), id)
		case "funds":
			d.Funds, err = deleteIn(d.Funds, syncedEntries(p, networth.FundsOf), id)
		default:
			return fail("unknown product type %q, use one of %s", c.typ, strings.Join(draftTypes, ", "))
		}
		if err != nil {
			return fail("Error deleting %s: %v", id, err)
		}
	}
	if err := networth.EncodeDraftsFile(*draftsFile, d); err != nil {
		return fail("Error saving drafts: %v", err)
	}
	return subcommands.ExitSuccess
}

func deleteIn[E any](set networth.DraftSet[E], entries map[string]synced[E], id string) (networth.DraftSet[E], error) {
	s := set.Session(baseline(entries))
	if err := deleteDraft(s, entries, id); err != nil {
		return set, err
	}
	return networth.DraftSetOf(s), nil
}
