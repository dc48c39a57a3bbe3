package main

import (
	"fmt"
	"log"

	"weread2notion/internal/logfile"

	"github.com/spf13/pflag"
)

func main() {
	dir := pflag.String("dir", ".", "directory to clean; subdirectories are left alone")
	pflag.Parse()

	removed, err := logfile.Clean(*dir)
	for _, p := range removed {
		fmt.Printf("removed %s\n", p)
	}
	if err != nil {
		log.Fatalf("clean logs: %v", err)
	}
	fmt.Printf("%d log files removed from %s\n", len(removed), *dir)
}
