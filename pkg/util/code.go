package util

import (
	"math/rand"
	"strings"
)

// Ambiguous characters (0/O, 1/I) excluded so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCouponCode builds a random coupon code like "SAVE-X7Q2M9"
func GenerateCouponCode(prefix string, length int) string {
	var b strings.Builder
	if prefix != "" {
		b.WriteString(strings.ToUpper(prefix))
		b.WriteByte('-')
	}
	for i := 0; i < length; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// ReferralCodeForOwner derives the referral code for an owner. The code is a
// pure function of the owner id so repeated calls always agree, even before
// the referral record has been persisted.
func ReferralCodeForOwner(ownerUserID string) string {
	fragment := ownerUserID
	if len(fragment) > 6 {
		fragment = fragment[:6]
	}
	return "REF-" + strings.ToUpper(fragment)
}
