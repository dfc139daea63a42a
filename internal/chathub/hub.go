package chathub

import (
	"log"
	"sync"

	"fourkara/backend/internal/models"
	"fourkara/backend/internal/storage"
)

// inboundMessage is a validated chat message on its way from a client's
// read pump to the job group's relay loop.
type inboundMessage struct {
	senderID uint
	body     string
}

// Hub is the registry of live job conversations. Each job with at least
// one connected participant has a group; the group owns message relay
// for that job. The Hub is created at service start and holds the only
// process-wide chat state.
type Hub struct {
	mu      sync.Mutex
	groups  map[uint]*group
	Storage storage.Storage
}

// NewHub creates an empty hub backed by the given storage.
func NewHub(s storage.Storage) *Hub {
	return &Hub{
		groups:  make(map[uint]*group),
		Storage: s,
	}
}

// Join adds an admitted client to its job's group, creating the group on
// first join. Admission checks (authentication, participant policy) must
// already have passed.
func (h *Hub) Join(c Client) {
	for {
		h.mu.Lock()
		g, ok := h.groups[c.GetJobID()]
		if !ok {
			g = newGroup(h, c.GetJobID())
			h.groups[c.GetJobID()] = g
			go g.run()
		}
		h.mu.Unlock()

		if g.join(c) {
			return
		}
		// Lost a race with the group tearing itself down; retry against
		// a fresh group.
	}
}

// Leave removes a client from its job's group. Idempotent: every exit
// path of a connection funnels here, and late duplicates are no-ops.
func (h *Hub) Leave(c Client) {
	h.mu.Lock()
	g, ok := h.groups[c.GetJobID()]
	h.mu.Unlock()
	if ok {
		g.leave(c)
	}
}

// Forward hands an inbound message body to the sender's job group for
// persist-then-broadcast. If the group is gone (everyone disconnected in
// the same instant) the message is dropped.
func (h *Hub) Forward(c Client, body string) {
	h.mu.Lock()
	g, ok := h.groups[c.GetJobID()]
	h.mu.Unlock()
	if !ok {
		log.Printf("dropping message for job %d: no active group", c.GetJobID())
		return
	}
	select {
	case g.inCh <- inboundMessage{senderID: c.GetUserID(), body: body}:
	case <-g.quit:
		log.Printf("dropping message for job %d: group shutting down", c.GetJobID())
	}
}

// MemberCount reports how many connections are currently in the job's
// group. Zero when the job has no group.
func (h *Hub) MemberCount(jobID uint) int {
	h.mu.Lock()
	g, ok := h.groups[jobID]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// group is the broadcast set for one job conversation plus the goroutine
// that relays its messages. Membership is guarded by mu; the relay loop
// serializes persist-before-broadcast, which is what gives every member
// the same message order.
type group struct {
	jobID uint
	hub   *Hub

	mu      sync.Mutex
	clients map[Client]struct{}
	closed  bool

	inCh chan inboundMessage
	quit chan struct{}
}

func newGroup(h *Hub, jobID uint) *group {
	return &group{
		jobID:   jobID,
		hub:     h,
		clients: make(map[Client]struct{}),
		inCh:    make(chan inboundMessage, 64),
		quit:    make(chan struct{}),
	}
}

// join reports false if the group already shut down, in which case the
// caller must retry with a new group.
func (g *group) join(c Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.clients[c] = struct{}{}
	return true
}

// leave removes the client and tears the group down when it was the last
// member. Teardown deletes the group from the hub registry and stops the
// relay loop.
func (g *group) leave(c Client) {
	g.hub.mu.Lock()
	g.mu.Lock()

	delete(g.clients, c)
	empty := len(g.clients) == 0
	if empty && !g.closed {
		g.closed = true
		delete(g.hub.groups, g.jobID)
		close(g.quit)
	}

	g.mu.Unlock()
	g.hub.mu.Unlock()
}

// run is the group's relay loop. Handling one message at a time is what
// guarantees that broadcasts reach every member in persist order.
func (g *group) run() {
	for {
		select {
		case in := <-g.inCh:
			g.handleMessage(in)
		case <-g.quit:
			// Drain anything accepted before shutdown so a message from
			// a sender who disconnected right after sending still gets
			// persisted.
			for {
				select {
				case in := <-g.inCh:
					g.handleMessage(in)
				default:
					return
				}
			}
		}
	}
}

// handleMessage validates the sender against the job's current state,
// persists the message, then fans it out to every connected member,
// sender included. Authorization and storage failures drop the message
// but never the connection.
func (g *group) handleMessage(in inboundMessage) {
	job, err := g.hub.Storage.GetJob(g.jobID)
	if err != nil {
		log.Printf("ERROR: job %d lookup failed, dropping message: %v", g.jobID, err)
		return
	}

	receiverID, err := DeriveReceiver(job, in.senderID)
	if err != nil {
		log.Printf("dropping message on job %d: user %d is not a participant", g.jobID, in.senderID)
		return
	}

	msg := &models.Message{
		JobID:      g.jobID,
		SenderID:   in.senderID,
		ReceiverID: receiverID,
		Body:       in.body,
	}
	if err := g.hub.Storage.SaveMessage(msg); err != nil {
		// The message failed to send; no retry, the socket stays open
		// for the next attempt.
		return
	}

	frame := models.NewBroadcastFrame(models.NewMessageData(msg, displayNameFor(job, in.senderID)))
	g.broadcast(frame)
}

// broadcast delivers a frame to every member. Membership mutation is
// excluded while iterating. A member whose send buffer is full is closed
// and evicted rather than allowed to stall the group.
func (g *group) broadcast(frame models.Frame) {
	var evicted []Client

	g.mu.Lock()
	for c := range g.clients {
		select {
		case c.GetSendChannel() <- frame:
		default:
			delete(g.clients, c)
			evicted = append(evicted, c)
		}
	}
	g.mu.Unlock()

	for _, c := range evicted {
		log.Printf("evicting slow chat client (user %d, job %d)", c.GetUserID(), g.jobID)
		c.Close()
		g.leave(c)
	}
}
