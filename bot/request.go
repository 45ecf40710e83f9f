package bot

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kinoteka/i18n"
)

// tgClient is the outbound transport surface. *tgbotapi.BotAPI
// satisfies it; tests substitute a recorder.
type tgClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Request is the per-event context handed to handlers: who sent what,
// plus reply helpers bound to the originating chat and message.
type Request struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string         // message text (commands and free text)
	Value     string         // callback value, if any
	From      *tgbotapi.User // sender as reported by the transport
	HasPhoto  bool           // originating message carries a photo

	api tgClient
	loc *i18n.Bundle
	log *slog.Logger
}

// T looks up a localized string.
func (r *Request) T(key string, args ...any) string {
	return r.loc.Get(key, args...)
}

// Send sends a new message to the originating chat.
func (r *Request) Send(text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(r.ChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err := r.api.Send(msg)
	return err
}

// Edit rewrites the originating message's text and buttons.
func (r *Request) Edit(text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageText(r.ChatID, r.MessageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = kb
	_, err := r.api.Request(edit)
	return err
}

// Show updates the originating message with plain text. Photo messages
// cannot be edited into text, so those are replaced instead.
func (r *Request) Show(text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	if r.HasPhoto {
		return r.Replace(text, kb)
	}
	return r.Edit(text, kb)
}

// Replace deletes the originating message and sends text in its place.
// The delete is best effort; the replacement is still sent if it fails.
func (r *Request) Replace(text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	if _, err := r.api.Request(tgbotapi.NewDeleteMessage(r.ChatID, r.MessageID)); err != nil {
		r.log.Warn("bot.reply.delete_failed", "message_id", r.MessageID, "error", err)
	}
	return r.Send(text, kb)
}

// EditPhoto turns the originating message into a photo with the given
// caption. Without a photo URL it degrades to a text edit; when the
// originating message has no photo to edit it is deleted and resent as
// a photo; if the photo itself cannot be delivered the caption is sent
// as text with a note.
func (r *Request) EditPhoto(text, photoURL string, kb *tgbotapi.InlineKeyboardMarkup) error {
	if photoURL == "" {
		return r.Edit(text, kb)
	}

	var err error
	if r.HasPhoto {
		media := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(photoURL))
		media.Caption = text
		media.ParseMode = tgbotapi.ModeHTML
		edit := tgbotapi.EditMessageMediaConfig{
			BaseEdit: tgbotapi.BaseEdit{
				ChatID:      r.ChatID,
				MessageID:   r.MessageID,
				ReplyMarkup: kb,
			},
			Media: media,
		}
		_, err = r.api.Request(edit)
	} else {
		if _, delErr := r.api.Request(tgbotapi.NewDeleteMessage(r.ChatID, r.MessageID)); delErr != nil {
			r.log.Warn("bot.reply.delete_failed", "message_id", r.MessageID, "error", delErr)
		}
		photo := tgbotapi.NewPhoto(r.ChatID, tgbotapi.FileURL(photoURL))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeHTML
		if kb != nil {
			photo.ReplyMarkup = *kb
		}
		_, err = r.api.Send(photo)
	}

	if err != nil {
		r.log.Warn("bot.reply.photo_failed", "photo_url", photoURL, "error", err)
		return r.Replace(text+"\n\n"+r.T("Messages.ImageLoadError"), kb)
	}
	return nil
}
