package editor

import "strings"

// Platform 链接平台的封闭枚举，未识别的值归入 PlatformUnknown
type Platform string

const (
	PlatformGitHub         Platform = "github"
	PlatformYouTube        Platform = "youtube"
	PlatformLinkedIn       Platform = "linkedin"
	PlatformFacebook       Platform = "facebook"
	PlatformTwitter        Platform = "twitter"
	PlatformInstagram      Platform = "instagram"
	PlatformCodepen        Platform = "codepen"
	PlatformCodewars       Platform = "codewars"
	PlatformDevTo          Platform = "devto"
	PlatformFreeCodeCamp   Platform = "freecodecamp"
	PlatformFrontendMentor Platform = "frontendmentor"
	PlatformGitLab         Platform = "gitlab"
	PlatformHashnode       Platform = "hashnode"
	PlatformStackOverflow  Platform = "stackoverflow"
	PlatformTwitch         Platform = "twitch"
	PlatformUnknown        Platform = "unknown"
)

// DefaultPlatform 新增链接的默认平台
const DefaultPlatform = PlatformGitHub

var platformLabels = map[Platform]string{
	PlatformGitHub:         "GitHub",
	PlatformYouTube:        "YouTube",
	PlatformLinkedIn:       "LinkedIn",
	PlatformFacebook:       "Facebook",
	PlatformTwitter:        "Twitter",
	PlatformInstagram:      "Instagram",
	PlatformCodepen:        "Codepen",
	PlatformCodewars:       "Codewars",
	PlatformDevTo:          "Dev.to",
	PlatformFreeCodeCamp:   "freeCodeCamp",
	PlatformFrontendMentor: "Frontend Mentor",
	PlatformGitLab:         "GitLab",
	PlatformHashnode:       "Hashnode",
	PlatformStackOverflow:  "Stack Overflow",
	PlatformTwitch:         "Twitch",
	PlatformUnknown:        "Unknown",
}

// Platforms 返回全部可选平台（不含 Unknown），顺序稳定
func Platforms() []Platform {
	return []Platform{
		PlatformGitHub,
		PlatformYouTube,
		PlatformLinkedIn,
		PlatformFacebook,
		PlatformTwitter,
		PlatformInstagram,
		PlatformCodepen,
		PlatformCodewars,
		PlatformDevTo,
		PlatformFreeCodeCamp,
		PlatformFrontendMentor,
		PlatformGitLab,
		PlatformHashnode,
		PlatformStackOverflow,
		PlatformTwitch,
	}
}

// ParsePlatform resolves a free-form tag to a Platform. Matching is
// case-insensitive against both the tag and the display label;
// anything unrecognized becomes PlatformUnknown.
// ParsePlatform 将自由文本解析为平台枚举，无法识别时返回 Unknown
func ParsePlatform(s string) Platform {
	needle := strings.ToLower(strings.TrimSpace(s))
	for p, label := range platformLabels {
		if needle == string(p) || needle == strings.ToLower(label) {
			return p
		}
	}
	return PlatformUnknown
}

// Valid 判断平台是否属于已知枚举（Unknown 也是合法值）
func (p Platform) Valid() bool {
	_, ok := platformLabels[p]
	return ok
}

// Label 返回平台的展示名称
func (p Platform) Label() string {
	if label, ok := platformLabels[p]; ok {
		return label
	}
	return platformLabels[PlatformUnknown]
}

func (p Platform) String() string {
	return string(p)
}
