package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/passgate/internal/auth"
	"github.com/abhisek/passgate/internal/strength"
)

// errPolicy is returned by check --strict when a rule is broken.
var errPolicy = errors.New("password does not meet the registration policy")

// Terminal access, replaced in tests.
var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readPassword    = func() ([]byte, error) { return term.ReadPassword(int(os.Stdin.Fd())) }
)

var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Score a password and list the registration rules it breaks",
	Long: `Score a password the way the strength meter does.

Without an argument the password is read from stdin. On a terminal it is
read without echo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		password, err := checkInput(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		res := strength.Evaluate(password)
		if res.Label == "" {
			fmt.Fprintln(out, "Strength: (empty)")
		} else {
			fmt.Fprintln(out, res.Label)
		}
		fmt.Fprintf(out, "Score:    %d\n", res.Score)

		problems := auth.PasswordPolicy(password)
		if len(problems) == 0 {
			fmt.Fprintln(out, "Policy:   ok")
			return nil
		}
		fmt.Fprintln(out, "Policy:")
		for _, p := range problems {
			fmt.Fprintln(out, "  -", p)
		}
		if strict {
			return errPolicy
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("strict", false, "Exit with an error when the password breaks a registration rule")
}

// checkInput returns the password from args, a no-echo prompt or the first
// line of stdin.
func checkInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	if stdinIsTerminal() {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := readPassword()
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
