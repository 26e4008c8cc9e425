//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var binaries = map[string]string{
	"bin/masterdash-server": "./cmd/server",
	"bin/masterdata":        "./cmd/masterdata",
}

// Build tidies deps, then compiles the server and the CLI into ./bin.
func Build() error {
	mg.Deps(Tidy)
	for out, pkg := range binaries {
		fmt.Println(">> Building", out)
		if err := sh.Run("go", "build", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Run builds then executes the server binary.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server ...")
	return sh.RunV("./bin/masterdash-server")
}

// Dev starts the server via go run with debug logging.
func Dev() error {
	fmt.Println(">> Dev mode: go run ./cmd/server ...")
	cmd := exec.Command("go", "run", "./cmd/server", "--log-level", "debug")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	return cmd.Run()
}

// DevSQLite starts the server on a SQLite file seeded from the bundled data.
func DevSQLite() error {
	fmt.Println(">> Dev mode (sqlite): go run ./cmd/server ...")
	cmd := exec.Command("go", "run", "./cmd/server", "--data-source", "sqlite", "--db", "master.db", "--log-level", "debug")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	return cmd.Run()
}

// Export writes CSV and PDF exports of every dataset into ./exports.
func Export() error {
	if err := os.MkdirAll("exports", 0o755); err != nil {
		return err
	}
	for _, entity := range []string{"employees", "customers"} {
		for _, format := range []string{"csv", "pdf"} {
			out := filepath.Join("exports", entity+"."+format)
			if err := sh.RunV("go", "run", "./cmd/masterdata", "export", entity, "--format", format, "--out", out); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts, exports and the local SQLite DB.
func Clean() error {
	fmt.Println(">> Cleaning...")
	os.RemoveAll("bin")
	os.RemoveAll("exports")
	return sh.Rm("master.db")
}

// Install installs both binaries to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	for _, pkg := range binaries {
		if err := sh.Run("go", "install", pkg); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
