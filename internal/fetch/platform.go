package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose pages get dedicated selectors.
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

type platformSpec struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platforms = []platformSpec{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='_descriptionText']", "main"},
		noise:    []string{"[class*='_applicationForm']"},
	},
}

// commonNoise is removed on every job board: application forms, EEO text and share widgets
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".eeo-statement",
	".eeo-section",
	".voluntary-disclosure",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board a URL belongs to.
func DetectPlatform(rawURL string) Platform {
	if spec := lookupPlatform(rawURL); spec != nil {
		return spec.platform
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the selectors that locate the description on platform.
func PlatformContentSelectors(platform Platform) []string {
	for _, spec := range platforms {
		if spec.platform == platform {
			return append([]string{}, spec.content...)
		}
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the elements to strip on platform, including commonNoise.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string{}, commonNoise...)
	for _, spec := range platforms {
		if spec.platform == platform {
			noise = append(noise, spec.noise...)
		}
	}
	return noise
}

func lookupPlatform(rawURL string) *platformSpec {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for i := range platforms {
		for _, h := range platforms[i].hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return &platforms[i]
			}
		}
	}
	return nil
}
