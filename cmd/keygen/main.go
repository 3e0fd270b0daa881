package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forgo/gather/api/pkg/jwt"
)

func main() {
	privateKeyPath := flag.String("private", "./keys/private.pem", "Path to write the JWT private key")
	publicKeyPath := flag.String("public", "./keys/public.pem", "Path to write the JWT public key")
	force := flag.Bool("force", false, "Overwrite existing key files")

	flag.Parse()

	if !*force {
		for _, path := range []string{*privateKeyPath, *publicKeyPath} {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(os.Stderr, "Error: %s already exists (use -force to overwrite)\n", path)
				os.Exit(1)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(*privateKeyPath), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating key directory: %v\n", err)
		os.Exit(1)
	}

	if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key pair: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("JWT Key Pair Generated")
	fmt.Println("======================")
	fmt.Printf("Private key: %s\n", *privateKeyPath)
	fmt.Printf("Public key:  %s\n", *publicKeyPath)
	fmt.Println()
	fmt.Println("Configure the server with:")
	fmt.Printf("  JWT_PRIVATE_KEY_PATH=%s\n", *privateKeyPath)
	fmt.Printf("  JWT_PUBLIC_KEY_PATH=%s\n", *publicKeyPath)
}
