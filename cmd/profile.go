package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/models"
	"github.com/nutrisuggest/nutri/internal/output"
)

var profileCmd = &cobra.Command{
	Use:               "profile",
	Short:             "View and edit your profile and daily targets",
	GroupID:           "account",
	PersistentPreRunE: guardRoute("profile"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return profileShowCmd.RunE(cmd, args)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		profile := a.session.Profile()
		if profile == nil {
			fmt.Println("No profile yet. Run 'nutri profile set'.")
			return nil
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(profile)
		}

		fmt.Println(output.SectionHeader("profile"))
		if profile.Age != nil {
			fmt.Printf("  Age:      %d\n", *profile.Age)
		}
		if profile.Gender != nil {
			fmt.Printf("  Gender:   %s\n", *profile.Gender)
		}
		if profile.HeightCm != nil {
			fmt.Printf("  Height:   %.0f cm\n", *profile.HeightCm)
		}
		if profile.WeightKg != nil {
			fmt.Printf("  Weight:   %.1f kg\n", *profile.WeightKg)
		}
		if profile.ActivityLevel != nil {
			fmt.Printf("  Activity: %s\n", *profile.ActivityLevel)
		}
		if profile.Goal != nil {
			fmt.Printf("  Goal:     %s\n", *profile.Goal)
		}

		fmt.Println(output.SectionHeader("daily targets"))
		if profile.TargetCalories != nil {
			fmt.Printf("  Calories: %.0f kcal\n", *profile.TargetCalories)
		}
		if profile.TargetProteinG != nil {
			fmt.Printf("  Protein:  %.0f g\n", *profile.TargetProteinG)
		}
		if profile.TargetCarbsG != nil {
			fmt.Printf("  Carbs:    %.0f g\n", *profile.TargetCarbsG)
		}
		if profile.TargetFatG != nil {
			fmt.Printf("  Fat:      %.0f g\n", *profile.TargetFatG)
		}

		if !a.session.HasCompleteProfile() {
			output.Warning("Profile incomplete; dashboard and recommendations stay locked until it is filled in.")
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Fill in or update the profile interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		// Pre-fill from the current profile so editing keeps old values.
		var ageStr, heightStr, weightStr string
		gender := string(models.GenderOther)
		activity := string(models.ActivityModerate)
		goal := string(models.GoalMaintain)

		if p := a.session.Profile(); p != nil {
			if p.Age != nil {
				ageStr = strconv.Itoa(*p.Age)
			}
			if p.HeightCm != nil {
				heightStr = strconv.FormatFloat(*p.HeightCm, 'f', -1, 64)
			}
			if p.WeightKg != nil {
				weightStr = strconv.FormatFloat(*p.WeightKg, 'f', -1, 64)
			}
			if p.Gender != nil {
				gender = string(*p.Gender)
			}
			if p.ActivityLevel != nil {
				activity = string(*p.ActivityLevel)
			}
			if p.Goal != nil {
				goal = string(*p.Goal)
			}
		}

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Age").
				Value(&ageStr).
				Validate(validatePositiveInt),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Female", string(models.GenderFemale)),
					huh.NewOption("Male", string(models.GenderMale)),
					huh.NewOption("Other", string(models.GenderOther)),
				).
				Value(&gender),
			huh.NewInput().
				Title("Height (cm)").
				Value(&heightStr).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&weightStr).
				Validate(validatePositiveFloat),
			huh.NewSelect[string]().
				Title("Activity level").
				Options(
					huh.NewOption("Sedentary", string(models.ActivitySedentary)),
					huh.NewOption("Light", string(models.ActivityLight)),
					huh.NewOption("Moderate", string(models.ActivityModerate)),
					huh.NewOption("Active", string(models.ActivityActive)),
					huh.NewOption("Very active", string(models.ActivityVeryActive)),
				).
				Value(&activity),
			huh.NewSelect[string]().
				Title("Goal").
				Options(
					huh.NewOption("Lose weight", string(models.GoalLoseWeight)),
					huh.NewOption("Maintain", string(models.GoalMaintain)),
					huh.NewOption("Gain weight", string(models.GoalGainWeight)),
					huh.NewOption("Gain muscle", string(models.GoalGainMuscle)),
				).
				Value(&goal),
		))
		if err := form.Run(); err != nil {
			return err
		}

		age, _ := strconv.Atoi(ageStr)
		height, _ := strconv.ParseFloat(heightStr, 64)
		weight, _ := strconv.ParseFloat(weightStr, 64)
		g := models.Gender(gender)
		act := models.ActivityLevel(activity)
		gl := models.Goal(goal)

		update := api.ProfileUpdate{
			Age:           &age,
			Gender:        &g,
			HeightCm:      &height,
			WeightKg:      &weight,
			ActivityLevel: &act,
			Goal:          &gl,
		}

		// Offer server-computed targets before saving.
		targets := a.session.CalculateTargets(cmd.Context(), api.TargetsRequest{
			Age:           age,
			Gender:        g,
			HeightCm:      height,
			WeightKg:      weight,
			ActivityLevel: act,
			Goal:          gl,
		})
		if targets != nil {
			var accept bool
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Use suggested targets? %.0f kcal, P %.0fg, C %.0fg, F %.0fg",
						targets.TargetCalories, targets.TargetProteinG,
						targets.TargetCarbsG, targets.TargetFatG)).
					Value(&accept),
			))
			if err := form.Run(); err != nil {
				return err
			}
			if accept {
				update.TargetCalories = &targets.TargetCalories
				update.TargetProteinG = &targets.TargetProteinG
				update.TargetCarbsG = &targets.TargetCarbsG
				update.TargetFatG = &targets.TargetFatG
			}
		}

		if !a.session.UpdateProfile(cmd.Context(), update) {
			output.Error("%s", a.session.Err())
			return errors.New("profile update failed")
		}
		output.Success("Profile saved.")
		return nil
	},
}

var profileTargetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Ask the server to compute daily targets from the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		p := a.session.Profile()
		if !p.Complete() {
			return errors.New("profile incomplete; run 'nutri profile set' first")
		}

		targets := a.session.CalculateTargets(cmd.Context(), api.TargetsRequest{
			Age:           *p.Age,
			Gender:        *p.Gender,
			HeightCm:      *p.HeightCm,
			WeightKg:      *p.WeightKg,
			ActivityLevel: *p.ActivityLevel,
			Goal:          *p.Goal,
		})
		if targets == nil {
			return errors.New("could not compute targets")
		}

		fmt.Printf("Calories: %.0f kcal\n", targets.TargetCalories)
		fmt.Printf("Protein:  %.0f g\n", targets.TargetProteinG)
		fmt.Printf("Carbs:    %.0f g\n", targets.TargetCarbsG)
		fmt.Printf("Fat:      %.0f g\n", targets.TargetFatG)
		return nil
	},
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

func init() {
	profileShowCmd.Flags().Bool("json", false, "Output as JSON")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileTargetsCmd)
	rootCmd.AddCommand(profileCmd)
}
