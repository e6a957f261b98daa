package commission

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plexdi/studio/pkg/label"
)

var (
	ErrNotFound      = errors.New("commission not found")
	ErrInvalidStatus = errors.New("invalid commission status")
	ErrInvalidKind   = errors.New("invalid commission kind")
)

// Status is the machine-readable lifecycle token stored server-side.
// Display() yields the capitalized form shown to admins; the two forms
// round-trip losslessly.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func Statuses() []Status {
	return []Status{StatusQueued, StatusInProgress, StatusCompleted}
}

func ParseStatus(token string) (Status, error) {
	switch Status(token) {
	case StatusQueued, StatusInProgress, StatusCompleted:
		return Status(token), nil
	}
	return "", ErrInvalidStatus
}

// ParseStatusDisplay accepts the human-readable form ("In Progress").
func ParseStatusDisplay(display string) (Status, error) {
	return ParseStatus(label.Machineify(display))
}

func (s Status) Display() string {
	return label.Displayify(string(s))
}

// Kind is the project-type tag picked on the intake form.
type Kind string

const (
	KindBanner         Kind = "banner"
	KindLogo           Kind = "logo"
	KindThumbnail      Kind = "thumbnail"
	KindProfilePicture Kind = "profile_picture"
	KindEmotes         Kind = "emotes"
	KindCustom         Kind = "custom"
	// KindGeneral is the fallback for admin quick-creates that omit a type.
	KindGeneral Kind = "general"

	KindDiscordServerPackage      Kind = "discord_server_package"
	KindDiscordUserProfilePackage Kind = "discord_user_profile_package"
	KindSocialMediaBannerPackage  Kind = "social_media_banner_package"
	KindStarterStreamerPackage    Kind = "starter_streamer_package"
	KindStarterYoutubePackage     Kind = "starter_youtube_package"
	KindStreamerPackage           Kind = "streamer_package"
)

func Kinds() []Kind {
	return []Kind{
		KindBanner,
		KindLogo,
		KindThumbnail,
		KindProfilePicture,
		KindEmotes,
		KindDiscordServerPackage,
		KindDiscordUserProfilePackage,
		KindSocialMediaBannerPackage,
		KindStarterStreamerPackage,
		KindStarterYoutubePackage,
		KindStreamerPackage,
		KindCustom,
		KindGeneral,
	}
}

func ParseKind(token string) (Kind, error) {
	for _, k := range Kinds() {
		if Kind(token) == k {
			return k, nil
		}
	}
	return "", ErrInvalidKind
}

func (k Kind) Display() string {
	return label.Displayify(string(k))
}

// IsPackage reports whether the kind is a multi-deliverable bundle; a
// pricing tier must accompany those on intake.
func (k Kind) IsPackage() bool {
	return strings.HasSuffix(string(k), "_package")
}

// Tier is the pricing tier picked alongside the project type.
type Tier string

const (
	TierStarter  Tier = "starter"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

func Tiers() []Tier {
	return []Tier{TierStarter, TierStandard, TierPremium}
}

func (t Tier) Display() string {
	return label.Displayify(string(t))
}

// TempIDPrefix marks identifiers synthesized client-side for optimistic
// inserts, so they can never collide with server-assigned ones.
const TempIDPrefix = "tmp-"

func NewTempID() string {
	return TempIDPrefix + uuid.New().String()
}

func IsTempID(id string) bool {
	return len(id) > len(TempIDPrefix) && id[:len(TempIDPrefix)] == TempIDPrefix
}

type Commission interface {
	ID() string
	Name() string
	Email() string
	Discord() string
	Details() string
	Kind() Kind
	Status() Status
	CreatedAt() time.Time
	Designers() []string

	SetStatus(status Status) Commission
	WithID(id string) Commission
	IsOptimistic() bool
}

func New(name, email string, kind Kind, opts ...Option) Commission {
	c := &commissionImpl{
		id:        NewTempID(),
		name:      name,
		email:     email,
		kind:      kind,
		status:    StatusQueued,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*commissionImpl)

func WithID(id string) Option {
	return func(c *commissionImpl) {
		if id != "" {
			c.id = id
		}
	}
}

func WithDiscord(discord string) Option {
	return func(c *commissionImpl) {
		c.discord = discord
	}
}

func WithDetails(details string) Option {
	return func(c *commissionImpl) {
		c.details = details
	}
}

func WithStatus(status Status) Option {
	return func(c *commissionImpl) {
		if status != "" {
			c.status = status
		}
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *commissionImpl) {
		if !createdAt.IsZero() {
			c.createdAt = createdAt
		}
	}
}

func WithDesigners(designers []string) Option {
	return func(c *commissionImpl) {
		c.designers = designers
	}
}

type commissionImpl struct {
	id        string
	name      string
	email     string
	discord   string
	details   string
	kind      Kind
	status    Status
	createdAt time.Time
	designers []string
}

func (c *commissionImpl) ID() string           { return c.id }
func (c *commissionImpl) Name() string         { return c.name }
func (c *commissionImpl) Email() string        { return c.email }
func (c *commissionImpl) Discord() string      { return c.discord }
func (c *commissionImpl) Details() string      { return c.details }
func (c *commissionImpl) Kind() Kind           { return c.kind }
func (c *commissionImpl) Status() Status       { return c.status }
func (c *commissionImpl) CreatedAt() time.Time { return c.createdAt }
func (c *commissionImpl) Designers() []string  { return c.designers }

func (c *commissionImpl) IsOptimistic() bool {
	return IsTempID(c.id)
}

func (c *commissionImpl) clone() *commissionImpl {
	clone := *c
	clone.designers = append([]string(nil), c.designers...)
	return &clone
}

func (c *commissionImpl) SetStatus(status Status) Commission {
	clone := c.clone()
	clone.status = status
	return clone
}

func (c *commissionImpl) WithID(id string) Commission {
	clone := c.clone()
	clone.id = id
	return clone
}
