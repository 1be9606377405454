// ABOUTME: Operator CLI for shelfwise-identity bootstrap and token inspection
// ABOUTME: Works directly against the store and codec, bypassing the HTTP surface

package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/config"
	"github.com/shelfwise/shelfwise-identity/internal/password"
	"github.com/shelfwise/shelfwise-identity/internal/store"
	"github.com/shelfwise/shelfwise-identity/internal/token"
)

const banner = `
     _          _  __          _
 ___| |__   ___| |/ _|_      _(_)___  ___
/ __| '_ \ / _ \ | |_\ \ /\ / / / __|/ _ \
\__ \ | | |  __/ |  _|\ V  V /| \__ \  __/
|___/_| |_|\___|_|_|   \_/\_/ |_|___/\___|  admin
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "bootstrap":
		err = cmdBootstrap(args)
	case "token":
		err = cmdToken(args)
	case "users":
		err = cmdUsers()
	case "publishers":
		err = cmdPublishers()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: shelfwise-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  bootstrap <username> <email>   Create the first super admin (prompts for password)")
	fmt.Println("  token issue <admin-username>   Issue a token for an existing admin")
	fmt.Println("  token inspect <token>          Verify a token and print its claims")
	fmt.Println("  users                          List registered users")
	fmt.Println("  publishers                     List registered publisher houses")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  SHELFWISE_CONFIG               Path to identity.yaml (default: ~/.config/shelfwise/identity.yaml)")
	fmt.Println()
}

func loadConfig() (*config.Config, error) {
	path := os.Getenv("SHELFWISE_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = home + "/.config/shelfwise/identity.yaml"
	}
	return config.Load(path)
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.Database.Path)
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(raw), nil
}

// cmdBootstrap creates the first super admin directly in the store,
// skipping the registration-code gate. Refuses to run once any admin
// with the username exists.
func cmdBootstrap(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: shelfwise-admin bootstrap <username> <email>")
	}
	username, email := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if _, err := st.GetAdminByUsername(ctx, username); err == nil {
		return fmt.Errorf("admin %q already exists", username)
	}

	plaintext, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm:  ")
	if err != nil {
		return err
	}
	if plaintext != confirm {
		return fmt.Errorf("passwords do not match")
	}

	digest, err := password.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	perms := claims.PermissionsFor(claims.RoleSuperAdmin)
	a := &store.Admin{
		Username:            username,
		Email:               email,
		PasswordHash:        digest,
		Role:                string(claims.RoleSuperAdmin),
		IsSuperAdmin:        true,
		CanManageUsers:      perms.CanManageUsers,
		CanManagePublishers: perms.CanManagePublishers,
		CanManageContent:    perms.CanManageContent,
		CanManageSystem:     perms.CanManageSystem,
		IsActive:            true,
	}
	if err := st.CreateAdmin(ctx, a); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("Created super admin %s (%s)\n", username, a.ID)
	return nil
}

func cmdToken(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: shelfwise-admin token <issue|inspect> <arg>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	codec := token.NewCodec([]byte(cfg.Auth.SecretKey))

	switch args[0] {
	case "issue":
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		a, err := st.GetAdminByUsername(context.Background(), args[1])
		if err != nil {
			return fmt.Errorf("looking up admin: %w", err)
		}
		cs, err := claims.NewAdminClaims(a.ID, a.Username, claims.AdminRole(a.Role))
		if err != nil {
			return fmt.Errorf("building claims: %w", err)
		}
		tok, err := codec.Issue(cs, cfg.Auth.TokenTTL)
		if err != nil {
			return fmt.Errorf("issuing token: %w", err)
		}
		fmt.Println(tok)
		return nil

	case "inspect":
		cs, err := codec.Verify(args[1])
		if err != nil {
			return fmt.Errorf("verifying token: %w", err)
		}
		printClaims(cs)
		return nil
	}
	return fmt.Errorf("unknown token subcommand: %s", args[0])
}

func printClaims(cs claims.ClaimSet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "entity_type:\t%s\n", cs.EntityType())
	fmt.Fprintf(w, "kind:\t%s\n", cs.Kind())
	fmt.Fprintf(w, "subject:\t%s\n", cs.Subject())

	switch v := cs.(type) {
	case claims.UserClaims:
		fmt.Fprintf(w, "role:\t%s\n", v.Role)
	case claims.PublisherClaims:
		fmt.Fprintf(w, "name:\t%s\n", v.Name)
		fmt.Fprintf(w, "email:\t%s\n", v.Email)
	case claims.AdminClaims:
		fmt.Fprintf(w, "username:\t%s\n", v.Username)
		fmt.Fprintf(w, "role:\t%s\n", v.Role)
		fmt.Fprintf(w, "super_admin:\t%t\n", v.IsSuperAdmin)
		fmt.Fprintf(w, "manage_users:\t%t\n", v.Permissions.CanManageUsers)
		fmt.Fprintf(w, "manage_publishers:\t%t\n", v.Permissions.CanManagePublishers)
		fmt.Fprintf(w, "manage_content:\t%t\n", v.Permissions.CanManageContent)
		fmt.Fprintf(w, "manage_system:\t%t\n", v.Permissions.CanManageSystem)
	}
	w.Flush()
}

func cmdUsers() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	users, err := st.ListUsers(context.Background(), 200)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tVERIFIED\tACTIVE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\t%s\n",
			u.ID, u.Username, u.Role, u.IsVerified, u.IsActive,
			u.CreatedAt.Format(time.DateOnly))
	}
	return w.Flush()
}

func cmdPublishers() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	publishers, err := st.ListPublishers(context.Background(), 200)
	if err != nil {
		return fmt.Errorf("listing publishers: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tACTIVE\tCREATED")
	for _, p := range publishers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			p.ID, p.Name, p.Email, p.IsActive,
			p.CreatedAt.Format(time.DateOnly))
	}
	return w.Flush()
}
