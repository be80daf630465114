package onboard_test

import (
	"context"
	"fmt"
	"log"

	"github.com/lingokit/onboard"
	"github.com/lingokit/onboard/internal/testutils"
	"github.com/lingokit/onboard/pkg/adapters/memory"
	"github.com/lingokit/onboard/pkg/bank"
	"github.com/lingokit/onboard/pkg/domain"
	"github.com/lingokit/onboard/pkg/ports"
)

// ExampleNew demonstrates a full onboarding session over an in-memory
// identity provider and flag cache. A manual scheduler stands in for the
// typing delay so the example runs deterministically.
func ExampleNew() {
	// 1. Define the question script. bank.Default() ships a ready-made one;
	// here we build a short custom script instead.
	b, err := bank.New([]domain.Question{
		{ID: "display_name", Prompt: "What should we call you?", Order: 1, Kind: domain.KindFreeText},
		{ID: "target_language", Prompt: "Which language do you want to learn?", Order: 2, Kind: domain.KindSingleChoice, Options: []string{"Spanish", "French"}},
	})
	if err != nil {
		log.Fatal(err)
	}

	// 2. Wire the engine to its ports. A real client would plug in its
	// account service here; the memory adapters are enough for a demo.
	identity := memory.NewIdentity(&ports.UserIdentity{ID: "user-1", Email: "ada@example.com", EmailVerified: true})
	flags := memory.NewFlagStore()
	sched := &testutils.ManualScheduler{}

	eng := onboard.New(b, identity, flags, onboard.WithScheduler(sched))

	// 3. Start the session. The gate finds no completion flag, so the
	// first question is queued behind a typing placeholder.
	ctx := context.Background()
	if err := eng.Start(ctx); err != nil {
		log.Fatal(err)
	}
	sched.Fire() // resolve the typing placeholder

	// 4. Answer each question as it appears.
	fmt.Println(eng.Snapshot().CurrentQuestion.Prompt)
	if err := eng.Submit(ctx, "display_name", domain.FreeText("Ada")); err != nil {
		log.Fatal(err)
	}
	sched.Fire()

	fmt.Println(eng.Snapshot().CurrentQuestion.Prompt)
	if err := eng.Submit(ctx, "target_language", domain.SingleChoice("Spanish")); err != nil {
		log.Fatal(err)
	}

	// 5. The final answer triggers the save protocol synchronously.
	snap := eng.Snapshot()
	fmt.Println("phase:", snap.Phase)

	meta, _ := identity.ReadMetadata(ctx)
	fmt.Println("target_language:", meta["target_language"])

	// Output:
	// What should we call you?
	// Which language do you want to learn?
	// phase: complete
	// target_language: Spanish
}
