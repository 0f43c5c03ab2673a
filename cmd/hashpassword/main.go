package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/sahilchouksey/event-registration-api/utils/auth"
	"golang.org/x/term"
)

// hashpassword prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH
func main() {
	fs := flag.NewFlagSet("hashpassword", flag.ExitOnError)
	insecureUnmask := fs.Bool("insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hashpassword [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Prints a bcrypt hash for the ADMIN_PASSWORD_HASH environment variable.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	var password, passwordConfirm string
	if *insecureUnmask {
		fmt.Fprintf(os.Stderr, "WARNING: Password will be visible on screen!\n")
		password = readPlain("Enter password:   ")
		passwordConfirm = readPlain("Confirm password: ")
	} else {
		password = readHidden("Enter password:   ")
		passwordConfirm = readHidden("Confirm password: ")
	}

	if password != passwordConfirm {
		fmt.Fprintf(os.Stderr, "Passwords do not match\n")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\nAdd this to your environment:\n")
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
}

func readPlain(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	var value string
	if _, err := fmt.Scanln(&value); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	return value
}

// readHidden reads a line without echo, falling back to plain input off a terminal
func readHidden(prompt string) string {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return readPlain(prompt)
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	return string(password)
}
