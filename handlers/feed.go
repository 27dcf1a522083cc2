package handlers

import (
	"context"
	"fmt"
	"strings"

	"zavio/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleFeed(ctx context.Context, svc *chatServices, chatID int64) {
	page, err := svc.feed.Feed(ctx)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not load the feed"))
		return
	}
	h.renderFeed(chatID, page)
}

func (h *Handler) cbLoadMore(ctx context.Context, svc *chatServices, chatID int64) {
	page, err := svc.feed.LoadMore(ctx)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not load more posts"))
		return
	}
	h.renderFeed(chatID, page)
}

func (h *Handler) cbRefreshFeed(ctx context.Context, svc *chatServices, chatID int64) {
	page, err := svc.feed.Refresh(ctx)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not refresh the feed"))
		return
	}
	h.renderFeed(chatID, page)
}

// renderFeed sends each post as its own message with like and comment
// controls, then a footer with paging controls.
func (h *Handler) renderFeed(chatID int64, page models.PostPage) {
	if len(page.Posts) == 0 {
		h.send(chatID, "The feed is empty. Be the first with /post your message.")
		return
	}
	for _, p := range page.Posts {
		h.sendPost(chatID, p)
	}

	footer := fmt.Sprintf("Page %d of %d.", page.Meta.Page, page.Meta.TotalPages)
	buttons := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", "refresh"),
	}
	if !page.Exhausted() {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("⬇️ More", "more"))
	}
	h.sendWithKeyboard(chatID, footer, tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(buttons...)))
}

func (h *Handler) sendPost(chatID int64, p models.Post) {
	like := "🤍"
	if p.LikedByMe {
		like = "❤️"
	}
	text := fmt.Sprintf("👤 %s\n%s\n\n%s %d   💬 %d", p.UserName, p.Content, like, p.Likes, len(p.Comments))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(like+" Like", "like:"+p.ID),
			tgbotapi.NewInlineKeyboardButtonData("💬 Comment", "cmt:"+p.ID),
			tgbotapi.NewInlineKeyboardButtonData("🔎 Open", "detail:"+p.ID),
		),
	)
	h.sendWithKeyboard(chatID, text, keyboard)
}

func (h *Handler) cbPostDetail(ctx context.Context, svc *chatServices, chatID int64, postID string) {
	post, err := svc.feed.PostDetail(ctx, postID)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not load the post"))
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "👤 %s\n%s\n\n❤️ %d likes\nid: %s\n", post.UserName, post.Content, post.Likes, post.ID)
	if len(post.Comments) == 0 {
		b.WriteString("\nNo comments yet.")
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, cm := range post.Comments {
		like := "🤍"
		if cm.LikedByMe {
			like = "❤️"
		}
		fmt.Fprintf(&b, "\n💬 %s: %s (%s %d)", cm.UserName, cm.Content, like, cm.Likes)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", like, cm.UserName),
				fmt.Sprintf("clike:%s:%s", post.ID, cm.ID))))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("💬 Comment", "cmt:"+post.ID)))
	h.sendWithKeyboard(chatID, b.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) cbLikePost(ctx context.Context, svc *chatServices, chatID int64, postID string) {
	if !h.tryAcquire(chatID, "like:"+postID) {
		return
	}
	defer h.release(chatID, "like:"+postID)

	result, err := svc.feed.ToggleLikePost(ctx, postID)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not update the like"))
		return
	}
	if result.Liked {
		h.send(chatID, fmt.Sprintf("❤️ Liked. The post now has %d likes.", result.LikesCount))
		return
	}
	h.send(chatID, fmt.Sprintf("🤍 Like removed. The post now has %d likes.", result.LikesCount))
}

func (h *Handler) cbLikeComment(ctx context.Context, svc *chatServices, chatID int64, raw string) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return
	}
	postID, commentID := parts[0], parts[1]
	if !h.tryAcquire(chatID, "clike:"+commentID) {
		return
	}
	defer h.release(chatID, "clike:"+commentID)

	result, err := svc.feed.ToggleLikeComment(ctx, postID, commentID)
	if err != nil {
		h.send(chatID, h.describeError(err, "Could not update the like"))
		return
	}
	if result.Liked {
		h.send(chatID, fmt.Sprintf("❤️ Comment liked (%d likes).", result.LikesCount))
		return
	}
	h.send(chatID, fmt.Sprintf("🤍 Comment like removed (%d likes).", result.LikesCount))
}

func (h *Handler) handlePost(ctx context.Context, svc *chatServices, chatID int64, args string) {
	content := strings.TrimSpace(args)
	if content == "" {
		h.send(chatID, "Usage: /post your message")
		return
	}
	if !h.tryAcquire(chatID, "post") {
		return
	}
	defer h.release(chatID, "post")

	if _, err := svc.feed.CreatePost(ctx, content, ""); err != nil {
		h.send(chatID, h.describeError(err, "Could not publish the post"))
		return
	}
	h.send(chatID, "✅ Posted. See it with /feed.")
}

// handleComment is the command form of commenting; the 💬 button under a
// post is the usual path.
func (h *Handler) handleComment(ctx context.Context, svc *chatServices, chatID int64, args string) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) != 2 {
		h.send(chatID, "Usage: /comment postID your message (the post id is shown in the 🔎 Open view)")
		return
	}
	h.submitComment(ctx, svc, chatID, parts[0], parts[1])
}

func (h *Handler) submitComment(ctx context.Context, svc *chatServices, chatID int64, postID, text string) {
	content := strings.TrimSpace(text)
	if content == "" {
		h.send(chatID, "Empty comments are not allowed.")
		return
	}
	if !h.tryAcquire(chatID, "comment:"+postID) {
		return
	}
	defer h.release(chatID, "comment:"+postID)

	if _, err := svc.feed.AddComment(ctx, postID, content); err != nil {
		h.send(chatID, h.describeError(err, "Could not add the comment"))
		return
	}
	h.send(chatID, "✅ Comment added.")
}
