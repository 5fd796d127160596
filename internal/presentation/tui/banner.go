package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the simulator banner.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	s1 := termenv.String("  ___  __ _ _   _| |_(_)").Foreground(p.Color("#818cf8"))
	s2 := termenv.String(" / __|/ _` | | | | __| |").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" \\__ \\ (_| | |_| | |_| |").Foreground(p.Color("#c084fc"))
	s4 := termenv.String(" |___/\\__,_|\\__,_|\\__|_|").Foreground(p.Color("#e879f9"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Printf("  menu simulator %s\n\n", version)
}
