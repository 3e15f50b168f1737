// Command pos is the interactive point-of-sale session. It owns the single
// store handle for the lifetime of the process and drives the catalog, cart,
// and order engine through a line-based prompt.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/oakdonuts/pos-backend/internal/cart"
	"github.com/oakdonuts/pos-backend/internal/catalog"
	"github.com/oakdonuts/pos-backend/internal/orders"
	"github.com/oakdonuts/pos-backend/pkg/config"
	"github.com/oakdonuts/pos-backend/pkg/db"
	"github.com/oakdonuts/pos-backend/pkg/enums"
	pkgerrors "github.com/oakdonuts/pos-backend/pkg/errors"
	"github.com/oakdonuts/pos-backend/pkg/logger"
	"github.com/oakdonuts/pos-backend/pkg/migrate"
	"github.com/oakdonuts/pos-backend/pkg/money"
	"go.uber.org/multierr"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "pos"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "pos",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	session, err := newSession(dbClient, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to wire services", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	logg.Info(ctx, "pos session started")
	runErr := session.run(ctx, os.Stdin, os.Stdout)

	// Release the store handle exactly once, on every exit path.
	closeErr := dbClient.Close()
	if combined := multierr.Combine(runErr, closeErr); combined != nil {
		logg.Error(ctx, "pos session ended with errors", combined)
		os.Exit(1)
	}
	logg.Info(ctx, "pos session closed")
}

type session struct {
	catalog catalog.Service
	cart    *cart.Cart
	orders  orders.Service
	logg    *logger.Logger
}

func newSession(dbClient *db.Client, cfg *config.Config, logg *logger.Logger) (*session, error) {
	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogSvc, err := catalog.NewService(catalogRepo)
	if err != nil {
		return nil, err
	}

	sessionCart, err := cart.New(catalogRepo)
	if err != nil {
		return nil, err
	}

	orderSvc, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		dbClient,
		sessionCart,
		catalogRepo,
		cfg.Orders,
	)
	if err != nil {
		return nil, err
	}

	return &session{catalog: catalogSvc, cart: sessionCart, orders: orderSvc, logg: logg}, nil
}

func (s *session) run(ctx context.Context, in *os.File, out *os.File) error {
	fmt.Fprintln(out, "Oak Donuts POS. Type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if err := s.dispatch(ctx, out, fields); err != nil {
			fmt.Fprintln(out, renderError(err))
		}
	}
}

func (s *session) dispatch(ctx context.Context, out *os.File, fields []string) error {
	switch fields[0] {
	case "help":
		printHelp(out)
		return nil
	case "menu":
		return s.printMenu(ctx, out, fields[1:])
	case "item":
		return s.itemCommand(ctx, out, fields[1:])
	case "add":
		return s.addToCart(ctx, out, fields[1:])
	case "remove":
		return s.removeFromCart(out, fields[1:])
	case "cart":
		return s.printCart(ctx, out)
	case "checkout":
		return s.checkout(ctx, out)
	case "orders":
		return s.printOrders(ctx, out)
	case "order":
		return s.printOrder(ctx, out, fields[1:])
	case "status":
		return s.setStatus(ctx, out, fields[1:])
	case "delete":
		return s.deleteOrder(ctx, out, fields[1:])
	default:
		fmt.Fprintf(out, "unknown command %q, try 'help'\n", fields[0])
		return nil
	}
}

func printHelp(out *os.File) {
	fmt.Fprint(out, `commands:
  menu [category]                        list the menu
  item add <name> <price> <category> [description]
  item update <id> <name> <price> <category> [description]
  item delete <id>
  add <item-id>                          add a menu item to the cart
  remove <line-number>                   remove a cart line (1-based)
  cart                                   show cart lines and live total
  checkout                               turn the cart into an order
  orders                                 order history, newest first
  order <transaction-id>                 show one order
  status <transaction-id> <status>       set pending|completed|cancelled
  delete <transaction-id>                delete an order
  quit
`)
}

func (s *session) printMenu(ctx context.Context, out *os.File, args []string) error {
	var (
		items []catalog.ItemDTO
		err   error
	)
	if len(args) > 0 {
		items, err = s.catalog.ListItemsByCategory(ctx, args[0])
	} else {
		items, err = s.catalog.ListItems(ctx)
	}
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "no items")
		return nil
	}
	for _, item := range items {
		desc := ""
		if item.Description != nil {
			desc = "  " + *item.Description
		}
		fmt.Fprintf(out, "%3d  %-20s $%s  [%s]%s\n", item.ID, item.Name, item.Price(), item.Category, desc)
	}
	return nil
}

func (s *session) itemCommand(ctx context.Context, out *os.File, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(out, "usage: item add|update|delete ...")
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 4 {
			fmt.Fprintln(out, "usage: item add <name> <price> <category> [description]")
			return nil
		}
		input, err := parseItemInput(args[1:])
		if err != nil {
			return err
		}
		created, err := s.catalog.CreateItem(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created item %d\n", created.ID)
		return nil

	case "update":
		if len(args) < 5 {
			fmt.Fprintln(out, "usage: item update <id> <name> <price> <category> [description]")
			return nil
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Fprintln(out, "item id must be a number")
			return nil
		}
		input, err := parseItemInput(args[2:])
		if err != nil {
			return err
		}
		if _, err := s.catalog.UpdateItem(ctx, id, input); err != nil {
			return err
		}
		fmt.Fprintf(out, "updated item %d\n", id)
		return nil

	case "delete":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: item delete <id>")
			return nil
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Fprintln(out, "item id must be a number")
			return nil
		}
		if err := s.catalog.DeleteItem(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted item %d\n", id)
		return nil

	default:
		fmt.Fprintln(out, "usage: item add|update|delete ...")
		return nil
	}
}

// parseItemInput reads <name> <price> <category> [description...].
func parseItemInput(args []string) (catalog.ItemInput, error) {
	cents, err := money.ParseAmount(args[1])
	if err != nil {
		return catalog.ItemInput{}, err
	}
	input := catalog.ItemInput{
		Name:       args[0],
		PriceCents: cents,
		Category:   args[2],
	}
	if len(args) > 3 {
		desc := strings.Join(args[3:], " ")
		input.Description = &desc
	}
	return input, nil
}

func (s *session) addToCart(ctx context.Context, out *os.File, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: add <item-id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(out, "item id must be a number")
		return nil
	}
	if err := s.cart.Add(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "added item %d (%d in cart)\n", id, s.cart.Len())
	return nil
}

func (s *session) removeFromCart(out *os.File, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: remove <line-number>")
		return nil
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(out, "line number must be a number")
		return nil
	}
	if err := s.cart.Remove(index - 1); err != nil {
		return err
	}
	fmt.Fprintf(out, "removed line %d (%d in cart)\n", index, s.cart.Len())
	return nil
}

func (s *session) printCart(ctx context.Context, out *os.File) error {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return nil
	}
	for i, line := range lines {
		fmt.Fprintf(out, "%3d  item %d\n", i+1, line.ItemID)
	}

	total, err := s.cart.Total(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "total: %s\n", money.FormatCentsUSD(total))
	return nil
}

func (s *session) checkout(ctx context.Context, out *os.File) error {
	transactionID, err := s.orders.Checkout(ctx)
	if err != nil {
		return err
	}
	s.logg.Info(s.logg.WithTransactionID(ctx, transactionID), "order placed")
	fmt.Fprintf(out, "order placed: %s\n", transactionID)
	return nil
}

func (s *session) printOrders(ctx context.Context, out *os.File) error {
	history, err := s.orders.List(ctx)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Fprintln(out, "no orders")
		return nil
	}
	for _, order := range history {
		fmt.Fprintf(out, "%s  %s  $%s  %d lines  %s\n",
			order.TransactionID,
			order.CreatedAt.Format("2006-01-02 15:04:05"),
			order.Total(),
			len(order.Lines),
			order.Status,
		)
	}
	return nil
}

func (s *session) printOrder(ctx context.Context, out *os.File, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: order <transaction-id>")
		return nil
	}
	order, err := s.orders.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s  %s  status=%s\n", order.TransactionID, order.CreatedAt.Format("2006-01-02 15:04:05"), order.Status)
	for _, line := range order.Lines {
		note := ""
		if line.Current == nil {
			note = "  (no longer on the menu)"
		}
		fmt.Fprintf(out, "%3d  %-20s $%s  [%s]%s\n",
			line.Position+1, line.Name, money.FormatCents(line.UnitPriceCents), line.Category, note)
	}
	fmt.Fprintf(out, "total: $%s\n", order.Total())
	return nil
}

func (s *session) setStatus(ctx context.Context, out *os.File, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(out, "usage: status <transaction-id> <pending|completed|cancelled>")
		return nil
	}
	status, err := enums.ParseOrderStatus(args[1])
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}
	if err := s.orders.SetStatus(ctx, args[0], status); err != nil {
		return err
	}
	fmt.Fprintf(out, "order %s is now %s\n", args[0], status)
	return nil
}

func (s *session) deleteOrder(ctx context.Context, out *os.File, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: delete <transaction-id>")
		return nil
	}
	if err := s.orders.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted order %s\n", args[0])
	return nil
}

// renderError translates core error codes into prompt messages. Wording lives
// here; the core only reports codes.
func renderError(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error: " + err.Error()
	}

	switch typed.Code() {
	case pkgerrors.CodeValidation:
		if details := typed.Details(); details != nil {
			return fmt.Sprintf("invalid input: %v", details)
		}
		return "invalid input: " + typed.Message()
	case pkgerrors.CodeNotFound:
		return "not found: " + typed.Message()
	case pkgerrors.CodeEmptyCart:
		return "the cart is empty, add something first"
	case pkgerrors.CodeIndexOutOfRange:
		return "no cart line with that number"
	case pkgerrors.CodeStateConflict:
		return "not allowed: " + typed.Message()
	default:
		return "something went wrong: " + typed.Message()
	}
}
