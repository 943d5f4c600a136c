// Command machsql parses a single SQL statement and prints its canonical form.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/freeeve/machparse"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("machsql: ")

	lowercase := flag.Bool("lowercase", false, "render keywords in lowercase")
	sql := flag.String("sql", "", "SQL statement to parse (reads stdin if omitted)")
	flag.Parse()

	input := *sql
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("reading stdin: %v", err)
		}
		input = string(data)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		log.Fatal("no SQL statement given")
	}

	config := machparse.ParseConfig{LowercaseOutput: *lowercase}
	stmt, perr := machparse.ParseWithConfig(config, input)
	if perr != nil {
		fmt.Fprintln(os.Stderr, perr.Error())
		os.Exit(1)
	}
	fmt.Println(machparse.StringWithConfig(stmt, config))
}
