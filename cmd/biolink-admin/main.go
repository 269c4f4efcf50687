// Command biolink-admin is a terminal console for editing a biolink site.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Anggahrm/biolink/internal/console"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "biolink-admin:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("biolink-admin", flag.ContinueOnError)
	addr := fs.String("addr", "", "server address (defaults to the saved address)")
	prefsPath := fs.String("prefs", defaultPrefsPath, "preferences file")
	passwordStdin := fs.Bool("password-stdin", false, "read the admin password from stdin and log in before starting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prefs := loadPrefs(*prefsPath)
	if *addr != "" {
		prefs.Addr = *addr
	}

	c, err := console.NewClient(console.ClientOptions{Addr: prefs.Addr})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loggedIn := false
	if *passwordStdin {
		pw, err := readPassword(os.Stdin)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		loginCtx, cancelLogin := context.WithTimeout(ctx, 20*time.Second)
		err = c.Login(loginCtx, pw)
		cancelLogin()
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		loggedIn = true
	}

	m := newModel(ctx, c, console.NewWorkspace(c), loggedIn)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(model); ok && fm.authenticated {
		if err := savePrefs(*prefsPath, Prefs{Addr: c.Addr()}); err != nil {
			fmt.Fprintln(os.Stderr, "biolink-admin: save prefs:", err)
		}
	}
	return nil
}

// readPassword prompts on a terminal without echo, or reads one line from
// piped input.
func readPassword(f *os.File) (string, error) {
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(f)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}
