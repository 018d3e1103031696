package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the carbondash ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Ember gradient (amber to red)
	s1 := termenv.String("                 _                     _           _     ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String("  ___ __ _ _ __| |__  ___  _ __   __| | __ _ ___| |__  ").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" / __/ _` | '__| '_ \\/ _ \\| '_ \\ / _` |/ _` / __| '_ \\ ").Foreground(p.Color("#f97316"))
	s4 := termenv.String("| (_| (_| | |  | |_) | (_) | | | | (_| | (_| \\__ \\ | | |").Foreground(p.Color("#ef4444"))
	s5 := termenv.String(" \\___\\__,_|_|  |_.__/\\___/|_| |_|\\__,_|\\__,_|___/_| |_|").Foreground(p.Color("#dc2626"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
