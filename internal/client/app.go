// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cipherchat/cipherchat/internal/logger"
	"github.com/cipherchat/cipherchat/internal/service"
	"github.com/cipherchat/cipherchat/internal/stream"
	"github.com/cipherchat/cipherchat/models"
)

// App is the interactive terminal chat client. Plain input lines are sent
// as chat messages; lines starting with "/" are commands.
type App struct {
	services *service.ClientServices
	log      *logger.Logger

	in  *bufio.Scanner
	out io.Writer

	// conversationID is the active conversation; empty starts a new one
	// on the next message.
	conversationID string
	enableSearch   bool
}

// NewApp builds the terminal client over stdin/stdout.
func NewApp(services *service.ClientServices, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("client services are required")
	}
	return &App{
		services: services,
		log:      log,
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run starts the chat loop and blocks until /quit or stdin closes.
func (a *App) Run() error {
	ctx := context.Background()

	fmt.Fprintln(a.out, titleStyle.Render("cipherchat"))
	fmt.Fprintln(a.out, helpStyle.Render("type a message to chat, /help for commands"))

	if !a.services.Keys.Available() {
		if err := a.setupKey(); err != nil {
			return err
		}
	}

	for {
		fmt.Fprint(a.out, promptStyle.Render("> "))
		line, ok := a.readLine()
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := a.runCommand(ctx, line); quit {
				return nil
			}
			continue
		}

		a.sendMessage(ctx, line)
	}
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// setupKey prompts for a passphrase until the key is configured or the
// user opts into plaintext mode by entering an empty line.
func (a *App) setupKey() error {
	fmt.Fprintln(a.out, "No encryption key configured.")
	fmt.Fprintln(a.out, helpStyle.Render("enter a passphrase, or an empty line for plaintext mode"))

	for {
		fmt.Fprint(a.out, promptStyle.Render("passphrase: "))
		line, ok := a.readLine()
		if !ok {
			return errors.New("input closed during key setup")
		}
		if line == "" {
			fmt.Fprintln(a.out, helpStyle.Render("continuing without encryption"))
			return nil
		}

		if err := a.services.Keys.Setup(line); err != nil {
			fmt.Fprintln(a.out, errorStyle.Render("key setup failed: "+err.Error()))
			continue
		}
		if err := a.services.Keys.SelfTest(); err != nil {
			fmt.Fprintln(a.out, errorStyle.Render("key self-test failed: "+err.Error()))
			continue
		}

		fmt.Fprintln(a.out, "Encryption enabled.")
		return nil
	}
}

// runCommand dispatches a slash command. It returns true when the app
// should exit.
func (a *App) runCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		a.printHelp()
	case "/new":
		a.conversationID = ""
		fmt.Fprintln(a.out, "Started a new conversation.")
	case "/search":
		a.enableSearch = !a.enableSearch
		fmt.Fprintf(a.out, "Search grounding %s.\n", onOff(a.enableSearch))
	case "/key":
		if err := a.setupKey(); err != nil {
			fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		}
	case "/nokey":
		if err := a.services.Keys.Remove(); err != nil {
			fmt.Fprintln(a.out, errorStyle.Render("remove key: "+err.Error()))
			break
		}
		fmt.Fprintln(a.out, "Encryption key removed, plaintext mode.")
	case "/list":
		a.listConversations(ctx, args)
	case "/open":
		a.openConversation(ctx, args)
	case "/rename":
		a.renameConversation(ctx, args)
	case "/star":
		a.starConversation(ctx, args, true)
	case "/unstar":
		a.starConversation(ctx, args, false)
	case "/delete":
		a.deleteConversation(ctx, args)
	case "/cleanup":
		a.cleanupConversations(ctx)
	case "/models":
		a.listModels(ctx)
	default:
		fmt.Fprintln(a.out, errorStyle.Render("unknown command "+cmd))
	}
	return false
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, helpStyle.Render(strings.Join([]string{
		"/list [starred]      list conversations",
		"/open <id>           open a conversation",
		"/rename <id> <title> rename a conversation",
		"/star <id>           star a conversation",
		"/unstar <id>         unstar a conversation",
		"/delete <id>         delete a conversation",
		"/cleanup             delete all non-starred conversations",
		"/models              list available models",
		"/new                 start a new conversation",
		"/search              toggle search grounding",
		"/key                 set or replace the encryption passphrase",
		"/nokey               remove the encryption key",
		"/quit                exit",
	}, "\n")))
}

// sendMessage runs one chat turn, streaming deltas to the terminal. A
// rejected key drops back into passphrase setup; the partial reply is
// already discarded by the stream layer.
func (a *App) sendMessage(ctx context.Context, message string) {
	opts := service.ChatOptions{EnableSearch: a.enableSearch}

	result, err := a.services.Chat.Send(ctx, a.conversationID, message, opts, stream.Callbacks{
		OnStart: func(conversationID string) {
			a.conversationID = conversationID
		},
		OnDelta: func(text string) {
			fmt.Fprint(a.out, text)
		},
	})
	if err != nil {
		fmt.Fprintln(a.out)
		a.log.Warn().Err(err).Msg("chat turn failed")
		if errors.Is(err, stream.ErrKeyRejected) {
			fmt.Fprintln(a.out, errorStyle.Render("response could not be decrypted; the key was cleared"))
			if setupErr := a.setupKey(); setupErr != nil {
				fmt.Fprintln(a.out, errorStyle.Render(setupErr.Error()))
			}
			return
		}
		fmt.Fprintln(a.out, errorStyle.Render("chat failed: "+err.Error()))
		return
	}

	fmt.Fprintln(a.out)
	if result.Final.ConversationID != "" {
		a.conversationID = result.Final.ConversationID
	}
	a.printGrounding(result.Final)
}

func (a *App) printGrounding(final models.StreamEvent) {
	if !final.Grounded || len(final.References) == 0 {
		return
	}
	fmt.Fprintln(a.out, metaStyle.Render("sources:"))
	for _, ref := range final.References {
		fmt.Fprintln(a.out, metaStyle.Render(fmt.Sprintf("  [%d] %s - %s", ref.ID, ref.Title, ref.URL)))
	}
}

func (a *App) listConversations(ctx context.Context, args []string) {
	var starred *bool
	if len(args) > 0 && args[0] == "starred" {
		v := true
		starred = &v
	}

	list, err := a.services.Conversations.List(ctx, 20, 0, starred)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("list failed: "+err.Error()))
		return
	}
	if len(list.Conversations) == 0 {
		fmt.Fprintln(a.out, helpStyle.Render("no conversations"))
		return
	}

	for _, conv := range list.Conversations {
		marker := "  "
		if conv.Starred {
			marker = starStyle.Render("* ")
		}
		title := conv.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(a.out, "%s%s  %s\n", marker, title, metaStyle.Render(conv.ConversationID))
	}
	if list.HasMore {
		fmt.Fprintln(a.out, helpStyle.Render("more conversations available"))
	}
}

func (a *App) openConversation(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, errorStyle.Render("usage: /open <id>"))
		return
	}

	conv, err := a.services.Conversations.Get(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("open failed: "+err.Error()))
		return
	}

	a.conversationID = conv.ConversationID
	fmt.Fprintln(a.out, titleStyle.Render(conv.Title))
	for _, msg := range conv.Messages {
		role := "you"
		if msg.Role == models.RoleAI {
			role = "ai"
		}
		fmt.Fprintf(a.out, "%s %s\n", metaStyle.Render(role+":"), msg.Content)
	}
}

func (a *App) renameConversation(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, errorStyle.Render("usage: /rename <id> <title>"))
		return
	}
	if err := a.services.Conversations.Rename(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("rename failed: "+err.Error()))
		return
	}
	fmt.Fprintln(a.out, "Renamed.")
}

func (a *App) starConversation(ctx context.Context, args []string, starred bool) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, errorStyle.Render("usage: /star <id>"))
		return
	}
	if err := a.services.Conversations.Star(ctx, args[0], starred); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("star failed: "+err.Error()))
		return
	}
	fmt.Fprintln(a.out, "Updated.")
}

func (a *App) deleteConversation(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, errorStyle.Render("usage: /delete <id>"))
		return
	}
	if err := a.services.Conversations.Delete(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("delete failed: "+err.Error()))
		return
	}
	if a.conversationID == args[0] {
		a.conversationID = ""
	}
	fmt.Fprintln(a.out, "Deleted.")
}

func (a *App) cleanupConversations(ctx context.Context) {
	deleted, err := a.services.Conversations.DeleteNonStarred(ctx)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("cleanup failed: "+err.Error()))
		return
	}
	// The active conversation may be among the deleted; start fresh.
	a.conversationID = ""
	fmt.Fprintf(a.out, "Deleted %d non-starred conversations.\n", deleted)
}

func (a *App) listModels(ctx context.Context) {
	catalog, err := a.services.Chat.Models(ctx)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render("list models failed: "+err.Error()))
		return
	}
	for _, model := range catalog {
		fmt.Fprintf(a.out, "%s  %s\n", model.ID, metaStyle.Render(model.Description))
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
