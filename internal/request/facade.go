package request

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tokdrift/internal/account"
)

const (
	refererHeader = "https://www.tiktok.com/"
	originHeader  = "https://www.tiktok.com"
)

// FacadeError is raised when a descriptor cannot be constructed from the
// given parameters. Callers treat it like any per-session activity failure.
type FacadeError struct {
	Action string
	Reason string
}

func (e *FacadeError) Error() string {
	return fmt.Sprintf("request %s: %s", e.Action, e.Reason)
}

// Facade builds and dispatches descriptors on behalf of one session.
type Facade struct {
	session   *account.Session
	signer    Signer
	transport Transport
	logger    *zap.Logger
}

// NewFacade binds a facade to a session. A nil signer signs nothing.
func NewFacade(s *account.Session, signer Signer, transport Transport, logger *zap.Logger) *Facade {
	if signer == nil {
		signer = NoopSigner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Facade{session: s, signer: signer, transport: transport, logger: logger}
}

// Session returns the bound session.
func (f *Facade) Session() *account.Session { return f.session }

func (f *Facade) headers(contentType string) map[string]string {
	h := map[string]string{
		"Cookie":     f.session.CookieHeader(),
		"Referer":    refererHeader,
		"Origin":     originHeader,
		"User-Agent": f.session.UserAgent(),
	}
	if contentType != "" {
		h["Content-Type"] = contentType
	}
	return h
}

func (f *Facade) build(method, base, path string, params []Param, contentType string, body []byte) Descriptor {
	u := base + path
	if q := encodeQuery(params); q != "" {
		u += "?" + q
	}
	return Descriptor{
		URL:     u,
		Method:  method,
		Headers: f.headers(contentType),
		Body:    body,
	}
}

// BuildFeed builds the recommended-feed fetch.
func (f *Facade) BuildFeed() Descriptor {
	return f.build("GET", f.session.Endpoints().API, "/recommend/item_list/",
		[]Param{{"count", "10"}}, "", nil)
}

// BuildSearch builds a general search for the given query.
func (f *Facade) BuildSearch(query string) (Descriptor, error) {
	if query == "" {
		return Descriptor{}, &FacadeError{Action: "search", Reason: "empty query"}
	}
	return f.build("GET", f.session.Endpoints().API, "/search/general/full/",
		[]Param{{"keyword", query}}, "", nil), nil
}

// BuildLikeVideo builds a like on one video.
func (f *Facade) BuildLikeVideo(videoID string) (Descriptor, error) {
	if videoID == "" {
		return Descriptor{}, &FacadeError{Action: "likeVideo", Reason: "missing video id"}
	}
	return f.build("POST", f.session.Endpoints().API, "/commit/item/digg/",
		[]Param{{"aweme_id", videoID}, {"type", "1"}}, "", nil), nil
}

// BuildComment builds a comment post on one video.
func (f *Facade) BuildComment(videoID, text string) (Descriptor, error) {
	if videoID == "" {
		return Descriptor{}, &FacadeError{Action: "comment", Reason: "missing video id"}
	}
	if text == "" {
		return Descriptor{}, &FacadeError{Action: "comment", Reason: "empty comment"}
	}
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return Descriptor{}, &FacadeError{Action: "comment", Reason: "unencodable body"}
	}
	return f.build("POST", f.session.Endpoints().API, "/comment/publish/",
		[]Param{{"aweme_id", videoID}}, "application/json", body), nil
}

// BuildLikeComment builds a like on one comment of one video.
func (f *Facade) BuildLikeComment(videoID, commentID string) (Descriptor, error) {
	if commentID == "" {
		return Descriptor{}, &FacadeError{Action: "likeComment", Reason: "missing comment id"}
	}
	params := []Param{{"cid", commentID}}
	if videoID != "" {
		params = append(params, Param{"aweme_id", videoID})
	}
	return f.build("POST", f.session.Endpoints().API, "/comment/digg/",
		params, "", nil), nil
}

// BuildUpdateAvatar builds an avatar upload with the raw image payload.
func (f *Facade) BuildUpdateAvatar(image []byte) (Descriptor, error) {
	if len(image) == 0 {
		return Descriptor{}, &FacadeError{Action: "updateAvatar", Reason: "empty image"}
	}
	return f.build("POST", f.session.Endpoints().Web, "/api/upload/image/",
		nil, "application/octet-stream", image), nil
}

// BuildUpdateBio builds a bio update.
func (f *Facade) BuildUpdateBio(bio string) (Descriptor, error) {
	if bio == "" {
		return Descriptor{}, &FacadeError{Action: "updateBio", Reason: "empty bio"}
	}
	body, err := json.Marshal(map[string]string{"signature": bio})
	if err != nil {
		return Descriptor{}, &FacadeError{Action: "updateBio", Reason: "unencodable body"}
	}
	return f.build("POST", f.session.Endpoints().API, "/user/profile/update/",
		nil, "application/json", body), nil
}

// Execute signs a descriptor and dispatches it. The call resolves with a
// response or fails; there is no silent path.
func (f *Facade) Execute(ctx context.Context, d Descriptor) (Response, error) {
	if header, value := f.signer.Sign(d.Query(), d.Body, f.session.UserAgent()); header != "" {
		d.Headers[header] = value
	}
	resp, err := f.transport.Do(ctx, d)
	if err != nil {
		f.logger.Debug("dispatch failed",
			zap.String("username", f.session.Username()),
			zap.String("url", d.URL),
			zap.Error(err))
		return Response{}, err
	}
	return resp, nil
}
