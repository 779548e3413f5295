package statusapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ZentaChain/erldist/pkg/channel"
)

// StatusResponse is the GET /status body: one entry per live channel
// plus the totals across all of them.
type StatusResponse struct {
	Success bool                     `json:"success"`
	Peers   int                      `json:"peers"`
	Totals  channel.Stats            `json:"totals"`
	Peer    map[string]channel.Stats `json:"peer"`
}

// PeerStatusResponse is the GET /status/channels/:peer body.
type PeerStatusResponse struct {
	Success bool          `json:"success"`
	Peer    string        `json:"peer"`
	Stats   channel.Stats `json:"stats"`
}

func (s *Server) handleStatus(c *gin.Context) {
	snapshot := s.registry.Snapshot()
	var totals channel.Stats
	for _, st := range snapshot {
		totals.FramesSent += st.FramesSent
		totals.FramesReceived += st.FramesReceived
		totals.TicksSent += st.TicksSent
		totals.TicksReceived += st.TicksReceived
		totals.BytesSent += st.BytesSent
		totals.BytesReceived += st.BytesReceived
	}
	c.JSON(http.StatusOK, StatusResponse{
		Success: true,
		Peers:   len(snapshot),
		Totals:  totals,
		Peer:    snapshot,
	})
}

func (s *Server) handlePeerStatus(c *gin.Context) {
	peer := c.Param("peer")
	ch, ok := s.registry.Get(peer)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "unknown peer",
			Message: "no channel is registered for " + peer,
		})
		return
	}
	c.JSON(http.StatusOK, PeerStatusResponse{
		Success: true,
		Peer:    peer,
		Stats:   ch.Stats(),
	})
}
