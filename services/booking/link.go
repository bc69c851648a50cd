package booking

import (
	"crypto/rand"
	"fmt"
)

const (
	meetingLinkBase = "https://meet.calendary.app"
	linkAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	linkIDLength    = 10
)

// GenerateMeetingLink returns a well-formed join URL of the shape
// https://meet.calendary.app/xxx-xxxx-xxx. The identifier carries 10 base36
// characters (~51 bits), so collisions are negligible at any plausible
// booking volume. Uniqueness is the requirement here, not unpredictability.
func GenerateMeetingLink() (string, error) {
	buf := make([]byte, linkIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate meeting id: %w", err)
	}
	for i := range buf {
		buf[i] = linkAlphabet[int(buf[i])%len(linkAlphabet)]
	}
	id := string(buf)
	return fmt.Sprintf("%s/%s-%s-%s", meetingLinkBase, id[:3], id[3:7], id[7:]), nil
}
