package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"rolodex/config"
	"rolodex/internal/domain/entity"
	"rolodex/internal/gateway"
	"rolodex/internal/infra/api"
	"rolodex/internal/search"
	"rolodex/internal/store"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Supported subcommands:
// - list:         List contacts, optionally filtered
// - search:       Ranked fuzzy search over contacts
// - create:       Create a contact
// - update:       Update contact fields
// - delete:       Delete one or more contacts
// - favorite:     Toggle a contact's favorite flag
// - group-create: Create a group
// - group-delete: Delete a group

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	searchCmd := flag.NewFlagSet("search", flag.ExitOnError)
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	favoriteCmd := flag.NewFlagSet("favorite", flag.ExitOnError)
	groupCreateCmd := flag.NewFlagSet("group-create", flag.ExitOnError)
	groupDeleteCmd := flag.NewFlagSet("group-delete", flag.ExitOnError)

	listFavorites := listCmd.Bool("favorites", false, "Only list favorites")
	listGroup := listCmd.String("group", "", "Only list members of the given group id")

	searchQuery := searchCmd.String("q", "", "Free-text query")
	searchFavorites := searchCmd.Bool("favorites", false, "Only search favorites")
	searchGroup := searchCmd.String("group", "", "Only search members of the given group id")

	createFirst := createCmd.String("first", "", "First name")
	createLast := createCmd.String("last", "", "Last name")
	createCompany := createCmd.String("company", "", "Company name")
	createPhone := createCmd.String("phone", "", "Mobile phone number")
	createEmail := createCmd.String("email", "", "Personal email address")
	createFavorite := createCmd.Bool("favorite", false, "Mark as favorite")

	updateID := updateCmd.String("id", "", "Contact id")
	updateFirst := updateCmd.String("first", "", "New first name")
	updateLast := updateCmd.String("last", "", "New last name")
	updateCompany := updateCmd.String("company", "", "New company name")
	updateNotes := updateCmd.String("notes", "", "New notes")

	deleteIDs := deleteCmd.String("id", "", "Contact id, or comma-separated ids")

	favoriteID := favoriteCmd.String("id", "", "Contact id")

	groupCreateName := groupCreateCmd.String("name", "", "Group name")
	groupCreateColor := groupCreateCmd.String("color", "", "Display color, e.g. #ff8800")
	groupCreateIcon := groupCreateCmd.String("icon", "", "Icon reference")

	groupDeleteID := groupDeleteCmd.String("id", "", "Group id")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := ctlFlags{
		List:        listFlags{cmd: listCmd, favorites: listFavorites, group: listGroup},
		Search:      searchFlags{cmd: searchCmd, query: searchQuery, favorites: searchFavorites, group: searchGroup},
		Create:      createFlags{cmd: createCmd, first: createFirst, last: createLast, company: createCompany, phone: createPhone, email: createEmail, favorite: createFavorite},
		Update:      updateFlags{cmd: updateCmd, id: updateID, first: updateFirst, last: updateLast, company: updateCompany, notes: updateNotes},
		Delete:      deleteFlags{cmd: deleteCmd, ids: deleteIDs},
		Favorite:    favoriteFlags{cmd: favoriteCmd, id: favoriteID},
		GroupCreate: groupCreateFlags{cmd: groupCreateCmd, name: groupCreateName, color: groupCreateColor, icon: groupCreateIcon},
		GroupDelete: groupDeleteFlags{cmd: groupDeleteCmd, id: groupDeleteID},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type ctlFlags struct {
	List        listFlags
	Search      searchFlags
	Create      createFlags
	Update      updateFlags
	Delete      deleteFlags
	Favorite    favoriteFlags
	GroupCreate groupCreateFlags
	GroupDelete groupDeleteFlags
}

type listFlags struct {
	cmd       *flag.FlagSet
	favorites *bool
	group     *string
}

type searchFlags struct {
	cmd       *flag.FlagSet
	query     *string
	favorites *bool
	group     *string
}

type createFlags struct {
	cmd      *flag.FlagSet
	first    *string
	last     *string
	company  *string
	phone    *string
	email    *string
	favorite *bool
}

type updateFlags struct {
	cmd     *flag.FlagSet
	id      *string
	first   *string
	last    *string
	company *string
	notes   *string
}

type deleteFlags struct {
	cmd *flag.FlagSet
	ids *string
}

type favoriteFlags struct {
	cmd *flag.FlagSet
	id  *string
}

type groupCreateFlags struct {
	cmd   *flag.FlagSet
	name  *string
	color *string
	icon  *string
}

type groupDeleteFlags struct {
	cmd *flag.FlagSet
	id  *string
}

func runSubcommand(ctx context.Context, flags *ctlFlags) error {
	switch os.Args[1] {
	case "list":
		return handleList(ctx, flags)
	case "search":
		return handleSearch(ctx, flags)
	case "create":
		return handleCreate(ctx, flags)
	case "update":
		return handleUpdate(ctx, flags)
	case "delete":
		return handleDelete(ctx, flags)
	case "favorite":
		return handleFavorite(ctx, flags)
	case "group-create":
		return handleGroupCreate(ctx, flags)
	case "group-delete":
		return handleGroupDelete(ctx, flags)
	default:
		printUsage()

		return errors.Errorf("unknown subcommand: %s", os.Args[1])
	}
}

// clientSession bundles the client-side core: the entity store, the mutation
// gateway in front of the remote API, and a searcher over the store.
type clientSession struct {
	st       *store.Store
	gw       *gateway.Gateway
	searcher *search.Searcher
}

func newClientSession() (*clientSession, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	st := store.New()
	remote := api.NewClient(cfg.RemoteAPI, logger)
	engine := search.NewEngine(cfg.Search.PageSize, cfg.Search.MinScore, search.Weights{
		Name:    cfg.Search.Weights.Name,
		Phone:   cfg.Search.Weights.Phone,
		Email:   cfg.Search.Weights.Email,
		Company: cfg.Search.Weights.Company,
	})

	return &clientSession{
		st:       st,
		gw:       gateway.New(remote, st),
		searcher: search.NewSearcher(st, engine, cfg.Sync.Debounce),
	}, nil
}

// bootstrap loads the remote state and fails fast when the fetch recorded an
// error, since every subcommand needs fresh data.
func (s *clientSession) bootstrap(ctx context.Context) error {
	s.gw.Bootstrap(ctx)
	if msg := s.st.Err(); msg != "" {
		return errors.New(msg)
	}

	return nil
}

func (s *clientSession) close() {
	s.searcher.Close()
}

func handleList(ctx context.Context, flags *ctlFlags) error {
	if err := flags.List.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}

	session, err := newClientSession()
	if err != nil {
		return err
	}
	defer session.close()

	if err := session.bootstrap(ctx); err != nil {
		return err
	}

	if *flags.List.favorites {
		session.searcher.ToggleFavoritesFilter()
	}
	if *flags.List.group != "" {
		groupID, err := uuid.Parse(*flags.List.group)
		if err != nil {
			return errors.Wrap(err, "invalid group id")
		}
		session.searcher.AddGroupFilter(groupID)
	}

	printContacts(session.searcher.Display())

	return nil
}

func handleSearch(ctx context.Context, flags *ctlFlags) error {
	if err := flags.Search.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}

	session, err := newClientSession()
	if err != nil {
		return err
	}
	defer session.close()

	if err := session.bootstrap(ctx); err != nil {
		return err
	}

	if *flags.Search.favorites {
		session.searcher.ToggleFavoritesFilter()
	}
	if *flags.Search.group != "" {
		groupID, err := uuid.Parse(*flags.Search.group)
		if err != nil {
			return errors.Wrap(err, "invalid group id")
		}
		session.searcher.AddGroupFilter(groupID)
	}
	// The query recomputes after the debounce window; wait for it before
	// printing so the one-shot command sees the ranked results.
	ranked := make(chan struct{}, 1)
	session.searcher.OnChange(func() {
		select {
		case ranked <- struct{}{}:
		default:
		}
	})
	session.searcher.SetQuery(*flags.Search.query)
	<-ranked

	printContacts(session.searcher.Display())

	return nil
}

func handleCreate(ctx context.Context, flags *ctlFlags) error {
	if err := flags.Create.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}
	if *flags.Create.first == "" || *flags.Create.last == "" {
		return errors.New("both -first and -last are required")
	}

	session, err := newClientSession()
	if err != nil {
		return err
	}
	defer session.close()

	input := &gateway.ContactInput{
		FirstName:  *flags.Create.first,
		LastName:   *flags.Create.last,
		Company:    *flags.Create.company,
		IsFavorite: *flags.Create.favorite,
	}
	if *flags.Create.phone != "" {
		input.PhoneNumbers = []entity.PhoneNumber{{
			ID:      uuid.New(),
			Number:  *flags.Create.phone,
			Type:    entity.PhoneTypeMobile,
			Primary: true,
		}}
	}
	if *flags.Create.email != "" {
		input.Emails = []entity.EmailAddress{{
			ID:      uuid.New(),
			Address: *flags.Create.email,
			Type:    entity.EmailTypePersonal,
			Primary: true,
		}}
	}

	contact, err := session.gw.CreateContact(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s (%s)\n", contact.FullName(), contact.ID)

	return nil
}

func handleUpdate(ctx context.Context, flags *ctlFlags) error {
	if err := flags.Update.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}
	id, err := uuid.Parse(*flags.Update.id)
	if err != nil {
		return errors.Wrap(err, "invalid contact id")
	}

	// Only flags the user actually set become patch fields.
	patch := &entity.ContactPatch{}
	flags.Update.cmd.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "first":
			patch.FirstName = flags.Update.first
		case "last":
			patch.LastName = flags.Update.last
		case "company":
			patch.Company = flags.Update.company
		case "notes":
			patch.Notes = flags.Update.notes
		}
	})
	if patch.IsZero() {
		return errors.New("no fields to update")
	}

	session, err := newClientSession()
	if err != nil {
		return err
	}
	defer session.close()

	contact, err := session.gw.SaveContact(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s (%s)\n", contact.FullName(), contact.ID)

	return nil
}

func handleDelete(ctx context.Context, flags *ctlFlags) error {
	if err := flags.Delete.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}
	if *flags.Delete.ids == "" {
		return errors.New("-id is required")
	}

	ids := make([]uuid.UUID, 0)
	for _, raw := range strings.Split(*flags.Delete.ids, ",") {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return errors.Wrapf(err, "invalid contact id %q", raw)
		}
		ids = append(ids, id)
	}

	session, err := newClientSession()
	if err != nil {
		return err
	}
	defer session.close()

	if len(ids) == 1 {
		if err := session.gw.RemoveContact(ctx, ids[0]); err != nil {
			return err
		}
	} else if err := session.gw.BulkRemoveContacts(ctx, ids); err != nil {
		return err
	}
	fmt.Printf("Deleted %d contact(s)\n", len(ids))

	return nil
}

func handleFavorite(ctx context.Context, flags *ctlFlags) error {
	if err := flags.Favorite.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}
	id, err := uuid.Parse(*flags.Favorite.id)
	if err != nil {
		return errors.Wrap(err, "invalid contact id")
	}

	session, err := newClientSession()
	if err != nil {
		return err
	}
	defer session.close()

	if err := session.bootstrap(ctx); err != nil {
		return err
	}

	contact, ok := session.st.Contact(id)
	if !ok {
		return errors.Errorf("contact %s not found", id)
	}

	flipped := !contact.IsFavorite
	updated, err := session.gw.SaveContact(ctx, id, &entity.ContactPatch{IsFavorite: &flipped})
	if err != nil {
		return err
	}
	state := "Unfavorited"
	if updated.IsFavorite {
		state = "Favorited"
	}
	fmt.Printf("%s %s\n", state, updated.FullName())

	return nil
}

func handleGroupCreate(ctx context.Context, flags *ctlFlags) error {
	if err := flags.GroupCreate.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}
	if *flags.GroupCreate.name == "" {
		return errors.New("-name is required")
	}

	session, err := newClientSession()
	if err != nil {
		return err
	}
	defer session.close()

	group, err := session.gw.CreateGroup(ctx, &gateway.GroupInput{
		Name:  *flags.GroupCreate.name,
		Color: *flags.GroupCreate.color,
		Icon:  *flags.GroupCreate.icon,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created group %s (%s)\n", group.Name, group.ID)

	return nil
}

func handleGroupDelete(ctx context.Context, flags *ctlFlags) error {
	if err := flags.GroupDelete.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}
	id, err := uuid.Parse(*flags.GroupDelete.id)
	if err != nil {
		return errors.Wrap(err, "invalid group id")
	}

	session, err := newClientSession()
	if err != nil {
		return err
	}
	defer session.close()

	if err := session.gw.RemoveGroup(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted group %s\n", id)

	return nil
}

func printContacts(contacts []*entity.Contact) {
	if len(contacts) == 0 {
		fmt.Println("No contacts found.")

		return
	}

	for _, c := range contacts {
		marker := " "
		if c.IsFavorite {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-38s %s", marker, c.ID, c.FullName())
		if c.Company != "" {
			line += " - " + c.Company
		}
		fmt.Println(line)
	}
}

func printUsage() {
	fmt.Println("Usage: rolodexctl <subcommand> [flags]")
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  list          List contacts (-favorites, -group <id>)")
	fmt.Println("  search        Fuzzy search contacts (-q <text>, -favorites, -group <id>)")
	fmt.Println("  create        Create a contact (-first, -last, -company, -phone, -email, -favorite)")
	fmt.Println("  update        Update a contact (-id, -first, -last, -company, -notes)")
	fmt.Println("  delete        Delete contacts (-id <id>[,<id>...])")
	fmt.Println("  favorite      Toggle a contact's favorite flag (-id)")
	fmt.Println("  group-create  Create a group (-name, -color, -icon)")
	fmt.Println("  group-delete  Delete a group (-id)")
}
