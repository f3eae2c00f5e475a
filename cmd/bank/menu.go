package main

import (
	"bufio"
	"fmt"
	"strings"
)

type option struct {
	choice      byte
	description string
}

// menu prints its options and loops until the user picks a valid one.
type menu struct {
	title   string
	options []option
}

func (m *menu) show(in *bufio.Reader) byte {
	border := strings.Repeat("=", 80)

	fmt.Println(border)
	fmt.Printf("= %-76s =\n", m.title)
	fmt.Println(border)
	fmt.Println()
	for _, o := range m.options {
		fmt.Printf(" %c) %s\n", o.choice, o.description)
	}
	fmt.Println()

	for {
		fmt.Print("Votre choix: ")
		line, err := in.ReadString('\n')
		if err != nil {
			// Input closed; behave like a quit.
			return 'Q'
		}
		line = strings.ToUpper(strings.TrimSpace(line))
		if len(line) == 1 {
			for _, o := range m.options {
				if line[0] == o.choice {
					return o.choice
				}
			}
		}
		fmt.Println("Option invalide.")
	}
}
