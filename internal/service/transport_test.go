package service

import (
	"context"
	"fmt"
	"sync"

	"tg-relay/internal/models"
)

// fakeTransport records outbound calls and can be told to fail for
// specific chat ids.
type fakeTransport struct {
	mu       sync.Mutex
	sent     []sentMessage
	failFor  map[int64]bool
	nextID   int
	leftChat []int64
}

type sentMessage struct {
	ChatID  int64
	Text    string
	Content models.Content
	Opts    SendOptions
	Forward bool
	FromID  int64
	FwdMsg  int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failFor: make(map[int64]bool)}
}

func (f *fakeTransport) failChat(chatID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failFor[chatID] = true
}

func (f *fakeTransport) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeTransport) messagesFor(chatID int64) []sentMessage {
	var out []sentMessage
	for _, m := range f.messages() {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeTransport) record(msg sentMessage) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[msg.ChatID] {
		return 0, fmt.Errorf("chat %d unreachable", msg.ChatID)
	}
	f.nextID++
	f.sent = append(f.sent, msg)
	return f.nextID, nil
}

func (f *fakeTransport) SendText(_ context.Context, chatID int64, text string, opts *SendOptions) (int, error) {
	msg := sentMessage{ChatID: chatID, Text: text}
	if opts != nil {
		msg.Opts = *opts
	}
	return f.record(msg)
}

func (f *fakeTransport) SendMedia(_ context.Context, chatID int64, content models.Content, opts *SendOptions) (int, error) {
	msg := sentMessage{ChatID: chatID, Content: content}
	if opts != nil {
		msg.Opts = *opts
	}
	return f.record(msg)
}

func (f *fakeTransport) ForwardMessage(_ context.Context, toChatID, fromChatID int64, messageID int) (int, error) {
	return f.record(sentMessage{ChatID: toChatID, Forward: true, FromID: fromChatID, FwdMsg: messageID})
}

func (f *fakeTransport) LeaveChat(_ context.Context, chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leftChat = append(f.leftChat, chatID)
	return nil
}
