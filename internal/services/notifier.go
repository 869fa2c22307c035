package services

import (
	"context"
	"fmt"

	"swingconnect/internal/events"
	"swingconnect/internal/models"
	"swingconnect/internal/storage"
)

// Notifier 订阅领域事件并生成站内通知
// 自己评论/点赞自己的内容不产生通知
type Notifier struct {
	store         storage.Store
	notifications *NotificationService
}

var _ events.Handler = (*Notifier)(nil)

func NewNotifier(store storage.Store, notifications *NotificationService) *Notifier {
	return &Notifier{store: store, notifications: notifications}
}

func (n *Notifier) HandleEvent(ctx context.Context, e events.Event) error {
	switch ev := e.(type) {
	case events.CommentCreated:
		return n.onCommentCreated(ctx, ev)
	case events.LikeAdded:
		return n.onLikeAdded(ctx, ev)
	}
	return nil
}

func (n *Notifier) onCommentCreated(ctx context.Context, ev events.CommentCreated) error {
	comment := ev.Comment
	post := ev.Post
	related := Related{
		ActorID:   &comment.AuthorID,
		PostID:    &post.ID,
		CommentID: &comment.ID,
	}

	// 回复先通知被回复者
	var parentAuthorID uint
	if comment.ParentID != nil {
		parent, err := n.store.GetComment(ctx, *comment.ParentID)
		if err != nil {
			return err
		}
		parentAuthorID = parent.AuthorID
		if parent.AuthorID != comment.AuthorID {
			_, err = n.notifications.Create(ctx, parent.AuthorID,
				models.NotificationTypeReplyComment,
				"收到新回复",
				fmt.Sprintf("%s 在《%s》中回复了您的评论", comment.AuthorName, post.Title),
				related)
			if err != nil {
				return err
			}
		}
	}

	// 帖子作者每条评论都会收到通知，回复也不例外；
	// 自己评论自己、或者作者刚作为被回复者收到过通知时跳过
	if post.AuthorID == comment.AuthorID {
		return nil
	}
	if comment.ParentID != nil && post.AuthorID == parentAuthorID {
		return nil
	}
	_, err := n.notifications.Create(ctx, post.AuthorID,
		models.NotificationTypeCommentPost,
		"收到新评论",
		fmt.Sprintf("%s 评论了您的帖子《%s》", comment.AuthorName, post.Title),
		related)
	return err
}

func (n *Notifier) onLikeAdded(ctx context.Context, ev events.LikeAdded) error {
	if ev.OwnerID == ev.ActorID {
		// 给自己点赞不通知
		return nil
	}

	actorName := ev.ActorName
	if actorName == "" {
		if actor, err := n.store.GetUser(ctx, ev.ActorID); err == nil {
			actorName = actor.Username
		} else {
			actorName = "有人"
		}
	}

	_, err := n.notifications.Create(ctx, ev.OwnerID,
		models.NotificationTypeLikePost,
		"收到新点赞",
		fmt.Sprintf("%s 赞了您的帖子《%s》", actorName, ev.PostTitle),
		Related{
			ActorID: &ev.ActorID,
			PostID:  &ev.PostID,
		})
	return err
}
