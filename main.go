// Package main provides a pointer to the rv16k-sim CLI.
// rv16k-sim is a cycle-stepped simulator for the rv16k 16-bit register
// machine.
//
// For the full CLI, use: go run ./cmd/rv16k-sim
package main

import "fmt"

func main() {
	fmt.Println("rv16k-sim")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv16k-sim' for the full CLI.")
}
