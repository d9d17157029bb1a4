// Command labstock is a terminal client for the lab inventory service:
// the auth forms, dashboard and item forms of the original web client,
// rendered over stdin/stdout.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/labstock-id/labstock/internal/api"
	"github.com/labstock-id/labstock/internal/auth"
	"github.com/labstock-id/labstock/internal/config"
	"github.com/labstock-id/labstock/internal/inventory"
	"github.com/labstock-id/labstock/internal/session"
)

type app struct {
	client *api.Client
	auth   *auth.Context
	inv    *inventory.Service
}

func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("labstock: %v", err)
	}

	tokens := session.NewStore(cfg.TokenFile)
	client := api.NewClient(cfg.APIURL, tokens, &http.Client{Timeout: cfg.HTTPTimeout})
	a := &app{
		client: client,
		auth:   auth.NewContext(client, tokens),
		inv:    inventory.NewService(client),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "login":
		err = a.login(ctx, args)
	case "register":
		err = a.register(ctx, args)
	case "logout":
		err = a.logout()
	case "whoami":
		err = a.whoami(ctx)
	case "list":
		err = a.list(ctx, args)
	case "add":
		err = a.add(ctx, args)
	case "update":
		err = a.update(ctx, args)
	case "rm":
		err = a.remove(ctx, args)
	case "stats":
		err = a.stats(ctx)
	case "categories":
		err = a.categories()
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "labstock: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "labstock: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: labstock <command> [flags]

Commands:
  register    create an account and sign in
  login       sign in
  logout      sign out (local only)
  whoami      show the signed-in user
  list        list inventory items (-q to search)
  add         add an item
  update      edit an item by id
  rm          delete an item by id
  stats       show inventory statistics
  categories  list valid item categories
`)
}

// requireAuth resolves the session before an authenticated command runs,
// the way the dashboard gates on the auth context.
func (a *app) requireAuth(ctx context.Context) error {
	a.auth.Refresh(ctx)
	if !a.auth.Authenticated() {
		return fmt.Errorf("not logged in (run 'labstock login')")
	}
	return nil
}
