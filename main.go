package main

import "auction-scraper/commands"

func main() {
	commands.Execute()
}
