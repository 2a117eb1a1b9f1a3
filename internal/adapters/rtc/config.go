// Package rtc builds the ICE configuration browsers use to construct their
// RTCPeerConnection. The server itself never terminates media; peers
// negotiate directly through the signaling relay.
package rtc

import "github.com/pion/webrtc/v4"

// Configuration returns a webrtc.Configuration for the given STUN URLs,
// falling back to a public Google STUN server when none are configured.
func Configuration(stunURLs []string) webrtc.Configuration {
	if len(stunURLs) == 0 {
		stunURLs = []string{"stun:stun.l.google.com:19302"}
	}
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: stunURLs},
		},
	}
}
