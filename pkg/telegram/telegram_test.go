package telegram

import (
	"testing"

	"github.com/raykavin/orderalert/pkg/conversation"
	"github.com/raykavin/orderalert/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tb "gopkg.in/tucnak/telebot.v2"
)

func TestCommandName(t *testing.T) {
	tt := []struct {
		text string
		name string
		ok   bool
	}{
		{"/start", "start", true},
		{"/adduser 1 @h login", "adduser", true},
		{"/listusers@orderalert_bot", "listusers", true},
		{"👤 Профиль", "", false},
		{"/", "", false},
	}

	for _, tc := range tt {
		t.Run(tc.text, func(t *testing.T) {
			name, ok := commandName(tc.text)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.name, name)
		})
	}
}

func TestMessageUpdate(t *testing.T) {
	user := &tb.User{ID: 7, Username: "trader", FirstName: "Ivan"}

	update := messageUpdate(&tb.Message{Sender: user, Text: "/adduser 1 @h login", Payload: "1 @h login"})
	assert.Equal(t, conversation.Sender{ID: 7, Username: "trader", FirstName: "Ivan"}, update.Sender)
	assert.Equal(t, conversation.Command{Name: "adduser", Args: []string{"1", "@h", "login"}}, update.Input)

	update = messageUpdate(&tb.Message{Sender: user, Text: "T-1"})
	assert.Equal(t, conversation.TextMessage{Text: "T-1"}, update.Input)

	update = callbackUpdate(&tb.Callback{Sender: user, Data: "order_5"})
	assert.Equal(t, conversation.CallbackAction{Data: "order_5"}, update.Input)
}

func TestSendOptions(t *testing.T) {
	t.Run("reply keyboard", func(t *testing.T) {
		options := sendOptions(core.Markdown("menu").WithKeyboard([]string{"a", "b"}, []string{"c"}))
		assert.Equal(t, tb.ModeMarkdown, options.ParseMode)
		require.NotNil(t, options.ReplyMarkup)
		assert.True(t, options.ReplyMarkup.ResizeReplyKeyboard)
		assert.Equal(t, [][]tb.ReplyButton{{{Text: "a"}, {Text: "b"}}, {{Text: "c"}}}, options.ReplyMarkup.ReplyKeyboard)
	})

	t.Run("inline keyboard", func(t *testing.T) {
		options := sendOptions(core.HTML("alert").WithInline([]core.InlineButton{{Text: "details", Data: "order_1"}}))
		assert.Equal(t, tb.ModeHTML, options.ParseMode)
		require.Len(t, options.ReplyMarkup.InlineKeyboard, 1)
		assert.Equal(t, "order_1", options.ReplyMarkup.InlineKeyboard[0][0].Data)
	})

	t.Run("remove keyboard", func(t *testing.T) {
		options := sendOptions(core.Text("bye").WithoutKeyboard())
		assert.Equal(t, tb.ModeDefault, options.ParseMode)
		assert.True(t, options.ReplyMarkup.ReplyKeyboardRemove)
	})

	t.Run("edit keeps no reply keyboard", func(t *testing.T) {
		options := sendOptions(core.Text("done").WithKeyboard([]string{"a"}).AsEdit())
		assert.Nil(t, options.ReplyMarkup)
	})
}
