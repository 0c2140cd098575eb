package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreaker/internal/account"
	"github.com/vovakirdan/brickbreaker/internal/session"
)

var (
	flagUsername string
	flagPassword string
	flagFullName string
	flagPhone    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create a player account. Missing fields are prompted for.

Rules:
  username  - at least 3 characters (any length if it is an email)
  password  - at least 6 characters with letters and digits
  fullname  - required
  phone     - 6 to 20 digits, spaces, ( ) + or -

Examples:
  brickbreaker register
  brickbreaker register --username alice --fullname "Alice Liddell" --phone "+1 555 0100"`,
	Args: cobra.NoArgs,
	Run:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save local games for an account",
	Args:  cobra.NoArgs,
	Run:   runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Play as Guest",
	Args:  cobra.NoArgs,
	Run:   runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in player",
	Args:  cobra.NoArgs,
	Run:   runWhoami,
}

func init() {
	for _, cmd := range []*cobra.Command{registerCmd, loginCmd} {
		cmd.Flags().StringVar(&flagUsername, "username", "", "Username")
		cmd.Flags().StringVar(&flagPassword, "password", "", "Password (prompted when empty)")
	}
	registerCmd.Flags().StringVar(&flagFullName, "fullname", "", "Full name")
	registerCmd.Flags().StringVar(&flagPhone, "phone", "", "Phone number")
}

func runRegister(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	in := bufio.NewReader(os.Stdin)
	reg := account.Registration{
		Username: promptIfEmpty(in, flagUsername, "Username"),
		Password: passwordIfEmpty(in, flagPassword),
		FullName: promptIfEmpty(in, flagFullName, "Full name"),
		Phone:    promptIfEmpty(in, flagPhone, "Phone"),
	}

	u, err := account.NewService(store).Register(reg)
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(os.Stderr, "Registration failed:")
		fields := make([]string, 0, len(verr.Fields))
		for f := range verr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f, verr.Fields[f])
		}
		os.Exit(1)
	case errors.Is(err, account.ErrUsernameTaken):
		fatalf("Error: username %q already exists", reg.Username)
	case err != nil:
		fatalf("Error: %v", err)
	}

	fmt.Printf("Account %s created. Run 'brickbreaker login' to play as %s.\n", u.Username, u.Username)
}

func runLogin(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	in := bufio.NewReader(os.Stdin)
	username := promptIfEmpty(in, flagUsername, "Username")
	password := passwordIfEmpty(in, flagPassword)

	u, err := account.NewService(store).Login(username, password)
	switch {
	case errors.Is(err, account.ErrUserNotFound):
		fatalf("Error: user %q not found", username)
	case errors.Is(err, account.ErrIncorrectPassword):
		fatalf("Error: incorrect password")
	case err != nil:
		fatalf("Error: %v", err)
	}

	if err := store.SetCurrentUser(u.Username); err != nil {
		fatalf("Error saving login: %v", err)
	}
	fmt.Printf("Logged in as %s.\n", u.Username)
}

func runLogout(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if err := store.ClearCurrentUser(); err != nil {
		fatalf("Error: %v", err)
	}
	fmt.Printf("Logged out. Games are saved as %s.\n", session.GuestName)
}

func runWhoami(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	name := currentPlayer(store)
	if name == "" {
		fmt.Printf("%s (not logged in)\n", session.GuestName)
		return
	}
	fmt.Println(name)
}

// promptIfEmpty returns value, or asks for it on stdin.
func promptIfEmpty(in *bufio.Reader, value, label string) string {
	if value != "" {
		return value
	}
	fmt.Printf("%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// passwordIfEmpty returns value, or reads a password without echo.
func passwordIfEmpty(in *bufio.Reader, value string) string {
	if value != "" {
		return value
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, _ := in.ReadString('\n')
		return strings.TrimRight(line, "\r\n")
	}

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		fatalf("Error reading password: %v", err)
	}
	return string(pw)
}
