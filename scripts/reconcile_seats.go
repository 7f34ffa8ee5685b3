package main

import (
	"fmt"
	"os"

	"github.com/Bithika-Jain/Project-Exhibition/internal/config"
	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
)

// Recomputes each project's seats_available from the applications that
// actually hold seats. Run without arguments for a dry run; pass
// --apply to write the corrected values.
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	db := models.GetDB()

	var projects []models.Project
	if err := db.Order("id").Find(&projects).Error; err != nil {
		fmt.Printf("Failed to read projects: %v\n", err)
		os.Exit(1)
	}

	apply := len(os.Args) > 1 && os.Args[1] == "--apply"
	drifted := 0

	for _, p := range projects {
		var held int64
		if err := db.Model(&models.Application{}).
			Where("project_id = ? AND status IN ?", p.ID,
				[]string{models.ApplicationStatusPending, models.ApplicationStatusShortlisted, models.ApplicationStatusSelected}).
			Count(&held).Error; err != nil {
			fmt.Printf("Failed to count applications for project %d: %v\n", p.ID, err)
			os.Exit(1)
		}

		expected := p.Seats - int(held)
		if expected < 0 {
			expected = 0
		}
		if expected == p.SeatsAvailable {
			continue
		}

		drifted++
		fmt.Printf("Project %d (%s): seats_available=%d, expected=%d (%d of %d seats held)\n",
			p.ID, p.Title, p.SeatsAvailable, expected, held, p.Seats)

		if apply {
			if err := db.Model(&models.Project{}).Where("id = ?", p.ID).
				Update("seats_available", expected).Error; err != nil {
				fmt.Printf("Failed to update project %d: %v\n", p.ID, err)
				os.Exit(1)
			}
			fmt.Printf("Updated project %d\n", p.ID)
		}
	}

	if drifted == 0 {
		fmt.Println("All seat counters consistent.")
	} else if !apply {
		fmt.Printf("\n%d projects drifted. Run with --apply to fix.\n", drifted)
	}
}
