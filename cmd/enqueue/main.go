package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/combat-engine/internal/config"
	"github.com/jwebster45206/combat-engine/internal/logger"
	iqueue "github.com/jwebster45206/combat-engine/internal/queue"
	"github.com/jwebster45206/combat-engine/pkg/queue"
)

// enqueue pushes a short scripted fight onto the intent queue: two sheets
// start a combat, the first one moves and attacks, then commits.
func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <attacker_sheet> <defender_sheet>\n", os.Args[0])
		os.Exit(1)
	}
	attacker, defender := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	client, err := iqueue.NewClient(ctx, cfg.RedisURL, logger.Setup(cfg))
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer client.Close()

	intents := iqueue.NewIntentQueue(client)
	sessionID := uuid.New()

	plan := []*queue.Intent{
		{Type: queue.IntentInitiate, SessionID: sessionID, Participants: []string{attacker, defender}},
		{Type: queue.IntentQueue, SessionID: sessionID, CombatantID: attacker, Action: &queue.ActionSpec{Name: "move", X: 10, Y: 10}},
		{Type: queue.IntentQueue, SessionID: sessionID, CombatantID: attacker, Action: &queue.ActionSpec{Name: "shoot", Target: defender}},
		{Type: queue.IntentCommit, SessionID: sessionID, CombatantID: attacker},
	}
	for _, intent := range plan {
		if err := intents.Enqueue(ctx, intent); err != nil {
			log.Fatal("Failed to enqueue intent:", err)
		}
		detail := ""
		if intent.Action != nil {
			detail = " " + intent.Action.Name
		}
		fmt.Printf("Enqueued %s%s: %s\n", intent.Type, detail, intent.RequestID)
	}

	depth, err := intents.Depth(ctx)
	if err != nil {
		log.Fatal("Failed to get queue depth:", err)
	}

	fmt.Printf("\nSession: %s\n", sessionID)
	fmt.Printf("Queue depth: %d intents\n", depth)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println("Start combatd to process them, and subscribe to the session channel:")
	fmt.Printf("   redis-cli SUBSCRIBE combat-events:%s\n", sessionID)
}
