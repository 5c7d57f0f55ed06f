package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"medleave_backend/dateutil"
	"medleave_backend/middleware"
	"medleave_backend/model"
	"medleave_backend/report"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account or reset its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			username = strings.TrimSpace(username)
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}

			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if err := connect(cfg, logger); err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			var user model.User
			err = middleware.DBConn.Where("username = ?", username).First(&user).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				user = model.User{Username: username, Password: string(hash), Role: middleware.RoleAdmin, IsActive: true}
				if err := middleware.DBConn.Create(&user).Error; err != nil {
					return err
				}
				logger.Info().Str("username", username).Msg("admin created")
			case err != nil:
				return err
			default:
				err := middleware.DBConn.Model(&user).Updates(map[string]interface{}{
					"password":  string(hash),
					"role":      middleware.RoleAdmin,
					"is_active": true,
				}).Error
				if err != nil {
					return err
				}
				logger.Info().Str("username", username).Msg("admin updated")
			}
			return nil
		},
	}
	cmd.Flags().String("username", "admin", "Admin username")
	cmd.Flags().String("password", "", "Admin password")
	return cmd
}

func hijriCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hijri <YYYY-MM-DD>...",
		Short: "Print the Umm al-Qura date of Gregorian dates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				h, ok := dateutil.ToHijri(arg)
				if !ok {
					fmt.Fprintf(out, "%s\tinvalid date\n", arg)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", arg, h)
			}
			return nil
		},
	}
}

type staticConfig map[string]string

func (s staticConfig) Get(_ context.Context, name string) (string, bool, error) {
	v, ok := s[name]
	return v, ok && v != "", nil
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a sample certificate to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			kindTag, _ := flags.GetString("kind")
			out, _ := flags.GetString("out")
			code, _ := flags.GetString("code")
			from, _ := flags.GetString("from")
			days, _ := flags.GetInt("days")
			relation, _ := flags.GetString("relation")
			logo, _ := flags.GetString("logo")

			kind, err := report.ParseKind(kindTag)
			if err != nil {
				return err
			}
			start, ok := dateutil.Parse(from)
			if !ok {
				return fmt.Errorf("invalid --from date %q", from)
			}
			if days < 1 {
				days = 1
			}
			end := start.AddDate(0, 0, days-1)

			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			rec := &report.Record{
				Code:              code,
				IdentityNumber:    "1000000001",
				NameAr:            "محمد عبدالله",
				NameEn:            "Mohammed Abdullah",
				DateFrom:          start,
				DateTo:            end,
				DayCount:          days,
				Relation:          relation,
				Employer:          "شركة التجربة",
				EmployerEn:        "Sample Company",
				DoctorNameAr:      "د. سارة أحمد",
				DoctorNameEn:      "Dr. Sarah Ahmed",
				DoctorSpecialtyAr: "طب الأسرة",
				DoctorSpecialtyEn: "Family Medicine",
				IssueDate:         time.Now(),
				Hospital: &report.Hospital{
					NameAr:        "مستشفى الملك فهد",
					NameEn:        "King Fahad Hospital",
					Logo:          logo,
					LicenseNumber: report.DefaultLicense,
				},
				Nationality: &report.Nationality{NameAr: "سعودي", NameEn: "Saudi"},
			}
			rec.HijriAdmission, _ = dateutil.HijriOf(start)
			rec.HijriDischarge, _ = dateutil.HijriOf(end)

			assets := report.LoadAssets(cfg.AssetDir, cfg.FontDir, cfg.UploadDir)
			composer := report.NewComposer(assets, staticConfig{report.InquiryURLKey: cfg.InquiryURL}, logger)
			doc, err := composer.Render(cmd.Context(), kind, rec)
			if err != nil {
				return err
			}
			if out == "" {
				out = doc.Filename
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			n, err := doc.WriteTo(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			logger.Info().Str("file", out).Int64("bytes", n).Str("fonts", doc.Fonts.Source.String()).Msg("certificate written")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String("kind", "sick", "Certificate kind: sick or companion")
	flags.String("out", "", "Output file, defaults to the certificate filename")
	flags.String("code", "GSL26012345678", "Leave code")
	flags.String("from", time.Now().Format(dateutil.LayoutISO), "First leave day, YYYY-MM-DD")
	flags.Int("days", 3, "Leave length in days")
	flags.String("relation", "father", "Companion relation")
	flags.String("logo", "", "Hospital logo path")
	return cmd
}
