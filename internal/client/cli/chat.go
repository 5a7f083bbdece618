package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/essabriabdelghani/chatbot-gemini/internal/client/api"
	"github.com/essabriabdelghani/chatbot-gemini/internal/client/conversations"
)

func (a *App) Say(ctx context.Context, text string) {

	// Capture the conversation id before the remote call: the reply must be
	// discarded if that conversation is gone by the time it arrives.
	convID := a.store.CurrentID()
	a.store.Append(convID, conversations.SenderUser, text)

	callCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	reply, err := a.assistant.Reply(callCtx, text)
	if err != nil {
		reply = "Connection error, please try again."
	}

	if _, ok := a.store.Append(convID, conversations.SenderAssistant, reply); !ok {
		// Conversation deleted mid-flight; drop the reply.
		return
	}

	fmt.Printf("assistant: %s\n", reply)
}

func (a *App) NewChat() {
	c := a.store.New()
	fmt.Printf("Started %s\n", c.Name)
}

func (a *App) ListChats() {
	current := a.store.CurrentID()
	for i, c := range a.store.List() {
		marker := " "
		if c.ID == current {
			marker = "*"
		}
		fmt.Printf("%s %d. %s (%d messages)\n", marker, i+1, c.Name, len(c.Messages))
	}
}

// chatByNumber resolves the 1-based index shown by ListChats.
func (a *App) chatByNumber(arg string) (*conversations.Conversation, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, false
	}
	list := a.store.List()
	if n < 1 || n > len(list) {
		return nil, false
	}
	return list[n-1], true
}

func (a *App) SwitchChat(arg string) {
	c, ok := a.chatByNumber(arg)
	if !ok {
		fmt.Println("No such conversation.")
		return
	}
	if err := a.store.Switch(c.ID); err != nil {
		fmt.Println("No such conversation.")
		return
	}
	fmt.Printf("Switched to %s\n", c.Name)
	for _, m := range c.Messages {
		fmt.Printf("%s: %s\n", m.Sender, m.Text)
	}
}

func (a *App) DeleteChat(arg string) {
	c, ok := a.chatByNumber(arg)
	if !ok {
		fmt.Println("No such conversation.")
		return
	}
	if err := a.store.Delete(c.ID); err != nil {
		fmt.Printf("Cannot delete: %v\n", err)
		return
	}
	fmt.Printf("Deleted %s\n", c.Name)
}

func (a *App) Search(query string) {
	for _, r := range api.Search(query) {
		fmt.Printf("%d. %s\n   %s\n", r.ID, r.Title, r.Content)
	}
}

func (a *App) Health(ctx context.Context) {
	if err := a.apiClient.Health(ctx); err != nil {
		fmt.Printf("Server unreachable: %v\n", err)
		return
	}
	fmt.Println("Server is up.")
}
