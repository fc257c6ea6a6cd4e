// adminctl is a terminal front end for the exam-prep admin API. Every
// subcommand maps to one service operation; output goes to stdout as
// aligned columns.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/prepstack/prepadmin/internal/config"
	"github.com/prepstack/prepadmin/internal/rest"
	"github.com/prepstack/prepadmin/internal/services"
	"github.com/prepstack/prepadmin/internal/session"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: adminctl <command> [flags]

commands:
  login        -email -password      authenticate and persist the session
  logout                             drop the persisted session
  whoami                             show the signed-in admin
  dashboard                          summary counters, subject stats, recent users
  content                            exams, classes, subjects and topics in one view
  exams        list | create
  classes      list | create
  subjects     list | create
  topics       list | create | delete
  questions    list | create | delete
  users        list | get
  onboarding   list                  student onboarding profiles
  upload                             upload question asset files`)
	os.Exit(2)
}

type app struct {
	auth       *services.AuthService
	content    *services.ContentService
	questions  *services.QuestionsService
	users      *services.UsersService
	dashboard  *services.DashboardService
	onboarding *services.OnboardingService
	uploads    *services.UploadService
}

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.ClientFromEnv()
	sessions, err := session.Open(cfg.SessionPath)
	if err != nil {
		log.Fatalf("open session: %v", err)
	}
	api := rest.New(rest.Config{BaseURL: cfg.BaseURL, Tokens: sessions, Timeout: cfg.HTTPTimeout})

	usersSvc := services.NewUsersService(api)
	a := &app{
		auth:       services.NewAuthService(api, sessions),
		content:    services.NewContentService(api),
		questions:  services.NewQuestionsService(api),
		users:      usersSvc,
		dashboard:  services.NewDashboardService(api, usersSvc),
		onboarding: services.NewOnboardingService(api),
		uploads:    services.NewUploadService(api),
	}

	ctx := context.Background()
	args := os.Args[2:]

	var cmdErr error
	switch os.Args[1] {
	case "login":
		cmdErr = a.login(ctx, args)
	case "logout":
		cmdErr = a.auth.Logout()
	case "whoami":
		cmdErr = a.whoami()
	case "dashboard":
		cmdErr = a.dashboardCmd(ctx)
	case "content":
		cmdErr = a.contentCmd(ctx)
	case "exams":
		cmdErr = a.examsCmd(ctx, args)
	case "classes":
		cmdErr = a.classesCmd(ctx, args)
	case "subjects":
		cmdErr = a.subjectsCmd(ctx, args)
	case "topics":
		cmdErr = a.topicsCmd(ctx, args)
	case "questions":
		cmdErr = a.questionsCmd(ctx, args)
	case "users":
		cmdErr = a.usersCmd(ctx, args)
	case "onboarding":
		cmdErr = a.onboardingCmd(ctx, args)
	case "upload":
		cmdErr = a.uploadCmd(ctx, args)
	default:
		usage()
	}
	if cmdErr != nil {
		log.Fatal(cmdErr)
	}
}

func table(write func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	write(w)
	w.Flush()
}

/* ---------------- auth ---------------- */

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("login needs -email and -password")
	}
	admin, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", admin.Email)
	return nil
}

func (a *app) whoami() error {
	admin, ok := a.auth.Admin()
	if !ok {
		return fmt.Errorf("not signed in")
	}
	fmt.Printf("%s (%s)\n", admin.Email, admin.Role)
	return nil
}

/* ---------------- dashboard ---------------- */

func (a *app) dashboardCmd(ctx context.Context) error {
	stats, err := a.dashboard.Overview(ctx)
	if err != nil {
		return err
	}
	s := stats.Summary
	fmt.Printf("users %d  questions %d  topics %d  active programs %d\n\n",
		s.TotalUsers, s.TotalQuestions, s.TotalTopics, s.ActivePrograms)

	if len(stats.SubjectStats) > 0 {
		table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "SUBJECT\tTOPICS\tQUESTIONS")
			for _, st := range stats.SubjectStats {
				fmt.Fprintf(w, "%s\t%d\t%d\n", st.SubjectName, st.TopicCount, st.QuestionCount)
			}
		})
		fmt.Println()
	}
	if len(stats.RecentUsers) > 0 {
		table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "RECENT USER\tPHONE\tCLASS")
			for _, u := range stats.RecentUsers {
				fmt.Fprintf(w, "%s %s\t%s\t%s\n", u.Name, u.Surname, u.PhoneNumber, u.ClassName)
			}
		})
	}
	return nil
}

/* ---------------- content ---------------- */

func (a *app) contentCmd(ctx context.Context) error {
	b, err := a.content.LoadAll(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("exams %d  classes %d  subjects %d  topics %d\n",
		len(b.Exams), len(b.Classes), len(b.Subjects), len(b.Topics))
	return nil
}

func (a *app) examsCmd(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		exams, err := a.content.Exams(ctx)
		if err != nil {
			return err
		}
		table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tDATE\tACTIVE")
			for _, e := range exams {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", e.ID, e.Name, e.ExamDate, e.IsActive)
			}
		})
		return nil
	case "create":
		fs := flag.NewFlagSet("exams create", flag.ExitOnError)
		name := fs.String("name", "", "exam name")
		date := fs.String("date", "", "exam date (YYYY-MM-DD)")
		targets := fs.String("targets", "", "target class levels, comma separated")
		preps := fs.String("preps", "", "prep class levels, comma separated")
		desc := fs.String("desc", "", "description")
		fs.Parse(args)
		exam, err := a.content.CreateExam(ctx, services.ExamDraft{
			Name:              *name,
			ExamDate:          *date,
			TargetClassLevels: splitLevels(*targets),
			PrepClassLevels:   splitLevels(*preps),
			Description:       *desc,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created exam %s\n", exam.ID)
		return nil
	default:
		return fmt.Errorf("exams: unknown subcommand %q", sub)
	}
}

func (a *app) classesCmd(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		classes, err := a.content.Classes(ctx)
		if err != nil {
			return err
		}
		table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tLEVELS\tEXAM")
			for _, c := range classes {
				fmt.Fprintf(w, "%s\t%s\t%d-%d\t%s\n", c.ID, c.Name, c.MinClassLevel, c.MaxClassLevel, c.ExamName)
			}
		})
		return nil
	case "create":
		fs := flag.NewFlagSet("classes create", flag.ExitOnError)
		name := fs.String("name", "", "class name")
		min := fs.Int("min", 0, "min class level")
		max := fs.Int("max", 0, "max class level")
		examID := fs.String("exam", "", "exam id (optional)")
		fs.Parse(args)
		class, err := a.content.CreateClass(ctx, services.ClassDraft{
			Name: *name, MinClassLevel: *min, MaxClassLevel: *max, ExamID: *examID,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created class %s\n", class.ID)
		return nil
	default:
		return fmt.Errorf("classes: unknown subcommand %q", sub)
	}
}

func (a *app) subjectsCmd(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		subjects, err := a.content.Subjects(ctx)
		if err != nil {
			return err
		}
		table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tORDER")
			for _, s := range subjects {
				fmt.Fprintf(w, "%s\t%s\t%d\n", s.ID, s.Name, s.OrderIndex)
			}
		})
		return nil
	case "create":
		fs := flag.NewFlagSet("subjects create", flag.ExitOnError)
		name := fs.String("name", "", "subject name")
		order := fs.Int("order", 0, "order index")
		min := fs.Int("min", 0, "min class level")
		max := fs.Int("max", 0, "max class level")
		fs.Parse(args)
		created, err := a.content.CreateSubject(ctx, services.SubjectDraft{
			Name: *name, OrderIndex: *order, MinClassLevel: *min, MaxClassLevel: *max,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created subject %s\n", created.ID)
		return nil
	default:
		return fmt.Errorf("subjects: unknown subcommand %q", sub)
	}
}

func (a *app) topicsCmd(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		fs := flag.NewFlagSet("topics list", flag.ExitOnError)
		subjectID := fs.String("subject", "", "filter by subject id")
		classID := fs.String("class", "", "filter by class id")
		fs.Parse(args)
		topics, err := a.content.Topics(ctx, services.TopicFilter{SubjectID: *subjectID, ClassID: *classID})
		if err != nil {
			return err
		}
		table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tSUBJECT\tCLASS\tPARENT")
			for _, t := range topics {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.SubjectName, t.ClassName, t.ParentName)
			}
		})
		return nil
	case "create":
		fs := flag.NewFlagSet("topics create", flag.ExitOnError)
		name := fs.String("name", "", "topic name")
		subjectID := fs.String("subject", "", "subject id")
		classID := fs.String("class", "", "class id")
		parentID := fs.String("parent", "", "parent topic id (optional)")
		order := fs.Int("order", 0, "order index")
		fs.Parse(args)
		topic, err := a.content.CreateTopic(ctx, services.TopicDraft{
			Name: *name, SubjectID: *subjectID, ClassID: *classID, ParentID: *parentID, OrderIndex: *order,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created topic %s\n", topic.ID)
		return nil
	case "delete":
		fs := flag.NewFlagSet("topics delete", flag.ExitOnError)
		id := fs.String("id", "", "topic id")
		fs.Parse(args)
		if *id == "" {
			return fmt.Errorf("topics delete needs -id")
		}
		return a.content.DeleteTopic(ctx, *id)
	default:
		return fmt.Errorf("topics: unknown subcommand %q", sub)
	}
}

/* ---------------- questions ---------------- */

func (a *app) questionsCmd(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		fs := flag.NewFlagSet("questions list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 10, "page size")
		topicID := fs.String("topic", "", "filter by topic id")
		difficulty := fs.String("difficulty", "", "easy, medium or hard")
		search := fs.String("search", "", "free-text search")
		fs.Parse(args)

		params := services.QuestionListParams{Page: *page, Limit: *limit}
		if *topicID != "" {
			params = params.WithTopic(*topicID)
		}
		if *difficulty != "" {
			params = params.WithDifficulty(services.Difficulty(*difficulty))
		}
		if *search != "" {
			params = params.WithSearch(*search)
		}
		if *page > 1 {
			params = params.WithPage(*page)
		}

		result, err := a.questions.List(ctx, params)
		if err != nil {
			return err
		}
		table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tTOPIC\tDIFFICULTY\tTEXT")
			for _, q := range result.Questions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.ID, q.TopicName, q.Difficulty, truncate(q.QuestionText, 60))
			}
		})
		p := result.Pagination
		fmt.Printf("page %d/%d, %d total\n", p.CurrentPage, p.TotalPages, p.TotalItems)
		return nil
	case "create":
		fs := flag.NewFlagSet("questions create", flag.ExitOnError)
		file := fs.String("file", "", "path to a JSON question draft")
		fs.Parse(args)
		if *file == "" {
			return fmt.Errorf("questions create needs -file")
		}
		raw, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		var d services.QuestionDraft
		if err := json.Unmarshal(raw, &d); err != nil {
			return fmt.Errorf("parse draft: %w", err)
		}
		q, err := a.questions.Create(ctx, d)
		if err != nil {
			return err
		}
		fmt.Printf("created question %s\n", q.ID)
		return nil
	case "delete":
		fs := flag.NewFlagSet("questions delete", flag.ExitOnError)
		id := fs.String("id", "", "question id")
		fs.Parse(args)
		if *id == "" {
			return fmt.Errorf("questions delete needs -id")
		}
		return a.questions.Delete(ctx, *id)
	default:
		return fmt.Errorf("questions: unknown subcommand %q", sub)
	}
}

/* ---------------- users / onboarding ---------------- */

func (a *app) usersCmd(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		fs := flag.NewFlagSet("users list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 10, "page size")
		search := fs.String("search", "", "search by name or phone")
		fs.Parse(args)

		params := services.UserListParams{Page: *page, Limit: *limit}
		if *search != "" {
			params = params.WithSearch(*search)
		}
		result, err := a.users.List(ctx, params)
		if err != nil {
			return err
		}
		table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tCLASS\tEXAM")
			for _, u := range result.Users {
				fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n", u.ID, u.Name, u.Surname, u.PhoneNumber, u.ClassName, u.ExamName)
			}
		})
		p := result.Pagination
		fmt.Printf("page %d/%d, %d total\n", p.CurrentPage, p.TotalPages, p.TotalItems)
		return nil
	case "get":
		fs := flag.NewFlagSet("users get", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		fs.Parse(args)
		if *id == "" {
			return fmt.Errorf("users get needs -id")
		}
		u, err := a.users.Get(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s  %s\n", u.Name, u.Surname, u.PhoneNumber)
		fmt.Printf("class %s  exam %s (%s)\n", u.ClassName, u.ExamName, u.ExamDate)
		fmt.Printf("goals %d/%d  programs %d\n", u.Stats.CompletedGoals, u.Stats.TotalGoals, u.Stats.TotalPrograms)
		return nil
	default:
		return fmt.Errorf("users: unknown subcommand %q", sub)
	}
}

func (a *app) onboardingCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("onboarding", flag.ExitOnError)
	status := fs.String("status", "all", "all, completed or pending")
	if len(args) > 0 && args[0] == "list" {
		args = args[1:]
	}
	fs.Parse(args)

	profiles, err := a.onboarding.Profiles(ctx, services.OnboardingStatus(*status))
	if err != nil {
		return err
	}
	table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "NAME\tPHONE\tGOAL\tEXAM\tSLOTS")
		for _, p := range profiles {
			fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%d\n", p.Name, p.Surname, p.PhoneNumber, p.PrimaryGoal, p.ExamType, len(p.Availability))
		}
	})
	return nil
}

/* ---------------- uploads ---------------- */

func (a *app) uploadCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	qImage := fs.String("question-image", "", "question image path")
	qPDF := fs.String("question-pdf", "", "question pdf path")
	sImage := fs.String("solution-image", "", "solution image path")
	sPDF := fs.String("solution-pdf", "", "solution pdf path")
	fs.Parse(args)

	open := func(path string) (*services.File, func(), error) {
		if path == "" {
			return nil, func() {}, nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return &services.File{Name: filepath.Base(path), Content: f}, func() { f.Close() }, nil
	}

	var files services.QuestionFiles
	for _, pair := range []struct {
		path string
		dst  **services.File
	}{
		{*qImage, &files.QuestionImage},
		{*qPDF, &files.QuestionPDF},
		{*sImage, &files.SolutionImage},
		{*sPDF, &files.SolutionPDF},
	} {
		f, done, err := open(pair.path)
		if err != nil {
			return err
		}
		defer done()
		*pair.dst = f
	}

	res, err := a.uploads.QuestionFiles(ctx, files)
	if err != nil {
		return err
	}
	for label, url := range map[string]string{
		"question image": res.QuestionImageURL,
		"question pdf":   res.QuestionPDFURL,
		"solution image": res.SolutionImageURL,
		"solution pdf":   res.SolutionPDFURL,
	} {
		if url != "" {
			fmt.Printf("%s: %s\n", label, url)
		}
	}
	return nil
}

/* ---------------- helpers ---------------- */

func splitLevels(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &n); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
