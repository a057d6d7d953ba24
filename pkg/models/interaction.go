package models

// Interaction type constants (Discord interaction `type` field)
const (
	InteractionPing      = 1
	InteractionCommand   = 2
	InteractionComponent = 3
)

// Interaction response type constants
const (
	ResponsePong            = 1
	ResponseChannelMessage  = 4
	ResponseDeferredMessage = 5
)

// FlagEphemeral marks a response as visible only to the invoking user
const FlagEphemeral = 64

// Interaction is an inbound Discord interaction webhook payload.
// Ephemeral; never persisted. The token is the one-time key for
// followup webhooks after a deferred response.
type Interaction struct {
	ID            string          `json:"id"`
	ApplicationID string          `json:"application_id"`
	Type          int             `json:"type"`
	Token         string          `json:"token"`
	ChannelID     string          `json:"channel_id"`
	GuildID       string          `json:"guild_id"`
	Data          InteractionData `json:"data"`
	Member        *Member         `json:"member"`
	User          *User           `json:"user"`
}

// InteractionData carries the invoked command name and its options
type InteractionData struct {
	Name    string          `json:"name"`
	Options []CommandOption `json:"options"`
}

// CommandOption is a name/value pair from a slash command invocation.
// Value is string for STRING options and a JSON number for INTEGER ones.
type CommandOption struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// Member is a guild member; Nick takes precedence over the username
type Member struct {
	Nick string `json:"nick"`
	User *User  `json:"user"`
}

// User is a Discord user
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot,omitempty"`
}

// UserID returns the invoking user's ID, whether the interaction came
// from a guild (member.user) or a DM (user).
func (i *Interaction) UserID() string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// Nickname returns the invoking user's display name, preferring the
// guild nickname over the account username.
func (i *Interaction) Nickname() string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil && i.Member.User.Username != "" {
			return i.Member.User.Username
		}
	}
	if i.User != nil && i.User.Username != "" {
		return i.User.Username
	}
	return "User"
}

// StringOption returns the named string option value, if present
func (d *InteractionData) StringOption(name string) (string, bool) {
	for _, opt := range d.Options {
		if opt.Name == name {
			if s, ok := opt.Value.(string); ok && s != "" {
				return s, true
			}
			return "", false
		}
	}
	return "", false
}

// IntOption returns the named integer option value, if present.
// JSON numbers decode as float64; Discord also accepts stringified
// integers from some clients, so both shapes are handled.
func (d *InteractionData) IntOption(name string) (int64, bool) {
	for _, opt := range d.Options {
		if opt.Name != name {
			continue
		}
		switch v := opt.Value.(type) {
		case float64:
			return int64(v), true
		case int64:
			return v, true
		case int:
			return int64(v), true
		}
		return 0, false
	}
	return 0, false
}

// InteractionResponse is the immediate JSON reply to an interaction
type InteractionResponse struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ResponseData is the message payload of an interaction response
type ResponseData struct {
	Content string `json:"content,omitempty"`
	Flags   int    `json:"flags"`
}

// NewMessageResponse builds an immediate channel message response
func NewMessageResponse(content string, ephemeral bool) *InteractionResponse {
	flags := 0
	if ephemeral {
		flags = FlagEphemeral
	}
	return &InteractionResponse{
		Type: ResponseChannelMessage,
		Data: &ResponseData{Content: content, Flags: flags},
	}
}

// NewDeferredResponse builds the "acknowledged, response pending"
// reply used before handing slow work to the pipeline.
func NewDeferredResponse() *InteractionResponse {
	return &InteractionResponse{
		Type: ResponseDeferredMessage,
		Data: &ResponseData{Flags: 0},
	}
}
