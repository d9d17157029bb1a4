package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/labstock-id/labstock/internal/forms"
	"github.com/labstock-id/labstock/internal/inventory"
	"github.com/labstock-id/labstock/internal/models"
)

var errInvalidInput = errors.New("invalid input")

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	form := forms.LoginForm{
		Email:    promptIfEmpty(*email, "Email: "),
		Password: promptIfEmpty(*password, "Password: "),
	}
	if errs := form.Validate(); !errs.Valid() {
		printFieldErrors(errs)
		return errInvalidInput
	}

	if err := a.auth.Login(ctx, form.Email, form.Password); err != nil {
		return err
	}
	user := a.auth.CurrentUser()
	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	form := forms.RegisterForm{
		Name:     promptIfEmpty(*name, "Name: "),
		Email:    promptIfEmpty(*email, "Email: "),
		Password: promptIfEmpty(*password, "Password: "),
	}
	if errs := form.Validate(); !errs.Valid() {
		printFieldErrors(errs)
		return errInvalidInput
	}

	if err := a.auth.Register(ctx, form.Name, form.Email, form.Password); err != nil {
		return err
	}
	user := a.auth.CurrentUser()
	fmt.Printf("Account created. Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) logout() error {
	a.auth.Logout()
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	user := a.auth.CurrentUser()
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("q", "", "search in name, category and description")
	fs.Parse(args)

	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if err := a.inv.FetchAll(ctx); err != nil {
		return err
	}

	items := a.inv.Filter(*query)
	if len(items) == 0 {
		fmt.Println("No items.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tQTY\tDESCRIPTION")
	for _, item := range items {
		qty := strconv.Itoa(item.Quantity)
		if item.Quantity <= inventory.LowStockThreshold {
			qty += " (low)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Category, qty, item.Description)
	}
	return w.Flush()
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "item name")
	category := fs.String("category", "", "item category (see 'labstock categories')")
	quantity := fs.String("qty", "", "quantity")
	description := fs.String("desc", "", "optional description")
	fs.Parse(args)

	form := forms.ItemForm{
		Name:        promptIfEmpty(*name, "Name: "),
		Category:    promptIfEmpty(*category, "Category: "),
		Quantity:    promptIfEmpty(*quantity, "Quantity: "),
		Description: *description,
	}
	if errs := form.Validate(); !errs.Valid() {
		printFieldErrors(errs)
		return errInvalidInput
	}

	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	created, err := a.inv.Create(ctx, form.Item())
	if err != nil {
		return err
	}
	fmt.Printf("Added %q (id %s)\n", created.Name, created.ID)
	return nil
}

func (a *app) update(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: labstock update <id> [flags]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	name := fs.String("name", "", "item name")
	category := fs.String("category", "", "item category")
	quantity := fs.String("qty", "", "quantity")
	description := fs.String("desc", "", "description")
	fs.Parse(args[1:])

	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	// Prefill from the current item, like the edit dialog did.
	existing, err := a.client.GetItem(ctx, id)
	if err != nil {
		return err
	}
	form := forms.ItemForm{
		Name:        existing.Name,
		Category:    existing.Category,
		Quantity:    strconv.Itoa(existing.Quantity),
		Description: existing.Description,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			form.Name = *name
		case "category":
			form.Category = *category
		case "qty":
			form.Quantity = *quantity
		case "desc":
			form.Description = *description
		}
	})

	if errs := form.Validate(); !errs.Valid() {
		printFieldErrors(errs)
		return errInvalidInput
	}

	updated, err := a.inv.Update(ctx, id, form.Item())
	if err != nil {
		return err
	}
	fmt.Printf("Updated %q\n", updated.Name)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: labstock rm <id> [-y]")
	}
	id := args[0]

	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip confirmation")
	fs.Parse(args[1:])

	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	item, err := a.client.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if !*yes && !confirm(fmt.Sprintf("Delete %q? [y/N]: ", item.Name)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.inv.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", item.Name)
	return nil
}

func (a *app) stats(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if err := a.inv.FetchAll(ctx); err != nil {
		return err
	}

	stats := a.inv.Stats()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total items\t%d\n", stats.TotalItems)
	fmt.Fprintf(w, "Total quantity\t%d\n", stats.TotalQuantity)
	fmt.Fprintf(w, "Categories\t%d\n", stats.Categories)
	fmt.Fprintf(w, "Low stock (≤%d)\t%d\n", inventory.LowStockThreshold, stats.LowStock)
	return w.Flush()
}

func (a *app) categories() error {
	for _, c := range models.Categories {
		fmt.Println(c)
	}
	return nil
}

func printFieldErrors(errs forms.Errors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, errs[field])
	}
}

func promptIfEmpty(value, prompt string) string {
	if value != "" {
		return value
	}
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return scanner.Text()
}

func confirm(prompt string) bool {
	answer := promptIfEmpty("", prompt)
	return answer == "y" || answer == "Y"
}
