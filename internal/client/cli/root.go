package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if account, _, ok := a.session.Current(); ok {
		return fmt.Sprintf("(%s)", account.Email)
	}
	return "(anonymous)"
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to the chat client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Printf("%s ", a.getStatus())
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "help":
			a.printHelp()
		case "exit", "quit":
			return
		case "health":
			a.Health(ctx)
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "profile":
			a.Profile(ctx)
		case "say", "new", "list", "switch", "delete", "search":
			if !a.isAuthenticated() {
				fmt.Println("Please log in first (register/login).")
				continue
			}
			a.runChatCommand(ctx, cmd, arg)
		default:
			fmt.Printf("Unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (a *App) runChatCommand(ctx context.Context, cmd, arg string) {
	switch cmd {
	case "say":
		if arg == "" {
			fmt.Println("Usage: say <text>")
			return
		}
		a.Say(ctx, arg)
	case "new":
		a.NewChat()
	case "list":
		a.ListChats()
	case "switch":
		a.SwitchChat(arg)
	case "delete":
		a.DeleteChat(arg)
	case "search":
		if arg == "" {
			fmt.Println("Usage: search <query>")
			return
		}
		a.Search(arg)
	}
}

func (a *App) printHelp() {
	fmt.Println(`Commands:
  register          create an account
  login             log in with email and password
  logout            drop the current session
  profile           show the logged-in account
  say <text>        send a message in the current conversation
  new               start a new conversation
  list              list conversations
  switch <n>        make conversation n current
  delete <n>        delete conversation n
  search <query>    search (canned results)
  health            check server availability
  exit              quit`)
}
