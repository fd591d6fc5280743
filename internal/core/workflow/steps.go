package workflow

import (
	"context"
	"strings"

	perr "postpilot/internal/platform/errors"
)

func (r *Runner) selectTopic(ctx context.Context, st State) (Node, State, error) {
	if st.Topic == "" {
		topic, err := r.gen.Topic(ctx, st.Niche)
		if err != nil {
			return "", st, err
		}
		st.Topic = strings.TrimSpace(topic)
	}
	if st.Topic == "" {
		return "", st, perr.Newf(perr.ErrorCodeBadGateway, "no topic produced for niche %q", st.Niche)
	}
	return NodeWriteDraft, st, nil
}

func (r *Runner) writeDraft(ctx context.Context, st State) (Node, State, error) {
	draft, err := r.gen.Draft(ctx, st.Niche, st.Topic, st.ReviewFeedback)
	if err != nil {
		return "", st, err
	}
	draft = strings.TrimSpace(draft)
	if draft == "" {
		return "", st, perr.Newf(perr.ErrorCodeBadGateway, "empty draft for topic %q", st.Topic)
	}
	st.PostDraft = draft
	st.IsApproved = false
	st.IterationCount++
	return NodeReviewDraft, st, nil
}

// reviewDraft loops back to writeDraft until approval or the iteration cap;
// at the cap the latest draft goes forward unapproved
func (r *Runner) reviewDraft(ctx context.Context, st State) (Node, State, error) {
	v, err := r.gen.Review(ctx, st.Niche, st.PostDraft)
	if err != nil {
		return "", st, err
	}
	st.IsApproved = v.Approved
	st.ReviewFeedback = strings.TrimSpace(v.Feedback)

	if !st.IsApproved && st.IterationCount < r.opts.MaxIterations {
		return NodeWriteDraft, st, nil
	}
	if st.ImagePath != "" {
		return NodeAttachImage, st, nil
	}
	return NodeFinalize, st, nil
}

func (r *Runner) attachImage(ctx context.Context, st State) (Node, State, error) {
	if st.ImageAssetURN == "" {
		urn, err := r.up.Upload(ctx, st.ImagePath, st.Credentials())
		if err != nil {
			return "", st, err
		}
		st.ImageAssetURN = urn
	}
	return NodeFinalize, st, nil
}

func (r *Runner) finalize(st State) (Node, State, error) {
	if st.ImagePath != "" && st.ImageAssetURN == "" {
		return "", st, perr.Internalf("image requested but not uploaded")
	}
	st.FinalPost = st.PostDraft
	if !st.Finalized() {
		return "", st, perr.InvalidArgf("nothing to publish")
	}
	return NodePublish, st, nil
}

func (r *Runner) publish(ctx context.Context, st State) (Node, State, error) {
	if !st.Finalized() {
		return "", st, perr.Internalf("publish before finalize")
	}
	rec, err := r.pub.Publish(ctx, st.FinalPost, st.Credentials(), st.ImageAssetURN)
	if err != nil {
		return "", st, err
	}
	st.Published = true
	st.PostURN = rec.PostURN
	st.PublishMessage = rec.Message
	return "", st, nil
}
