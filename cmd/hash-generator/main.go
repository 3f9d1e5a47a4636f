// Command hash-generator prints bcrypt hashes for the given passwords, for
// inserting accounts such as a first admin by hand.
//
//	go run ./cmd/hash-generator -cost 12 'Admin123!' 'User1234!'
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/fittrack/fittrack-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: hash-generator [-cost n] password...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher(*cost)
	failed := false
	for i, password := range flag.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "argument %d: %v\n", i+1, err)
			failed = true
			continue
		}
		fmt.Println(hash)
	}
	if failed {
		os.Exit(1)
	}
}
