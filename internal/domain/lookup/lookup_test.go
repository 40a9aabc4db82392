package lookup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/replaymerge/internal/domain/lookup"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("Given the built-in names table", t, func() {
		table := lookup.New()

		Convey("When looking up a known map", func() {
			name, ok := table.MapName(9)

			Convey("Then it should return its display name", func() {
				So(ok, ShouldBeTrue)
				So(name, ShouldEqual, "Arabia")
			})
		})

		Convey("When looking up an unknown map", func() {
			_, ok := table.MapName(99999)

			Convey("Then it should report a miss", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When looking up civilizations", func() {
			Convey("Then known ids should resolve", func() {
				So(table.CivName(1), ShouldEqual, "Britons")
				So(table.CivName(13), ShouldEqual, "Celts")
			})

			Convey("And unknown ids should yield distinct placeholders", func() {
				So(table.CivName(900), ShouldEqual, lookup.UnknownCiv(900))
				So(table.CivName(900), ShouldNotEqual, table.CivName(901))
			})
		})
	})

	Convey("Given overlay options", t, func() {
		table := lookup.New(
			lookup.WithMaps(map[int]string{9: "Arabia (custom)", 5000: "Tournament Map"}),
			lookup.WithCivs(map[int]string{100: "Modded"}),
		)

		Convey("Then overlaid entries should win and the rest should stay", func() {
			name, _ := table.MapName(9)
			So(name, ShouldEqual, "Arabia (custom)")
			name, _ = table.MapName(5000)
			So(name, ShouldEqual, "Tournament Map")
			name, _ = table.MapName(10)
			So(name, ShouldEqual, "Archipelago")
			So(table.CivName(100), ShouldEqual, "Modded")
		})
	})

	Convey("Given a table without defaults", t, func() {
		table := lookup.New(lookup.WithoutDefaults(), lookup.WithCivs(map[int]string{1: "Britons"}))

		Convey("Then only the given entries should exist", func() {
			maps, civs := table.Len()
			So(maps, ShouldEqual, 0)
			So(civs, ShouldEqual, 1)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a names file on disk", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		write := func(content string) string {
			path := filepath.Join(dir, "names.yaml")
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
			return path
		}

		Convey("When the file lists maps and civs", func() {
			path := write(`
maps:
  - id: 4242
    name: Cenotes
civs:
  - id: 1
    name: English
`)
			opts, err := lookup.Load(ctx, path)

			Convey("Then the options should overlay the defaults", func() {
				So(err, ShouldBeNil)
				table := lookup.New(opts...)
				name, ok := table.MapName(4242)
				So(ok, ShouldBeTrue)
				So(name, ShouldEqual, "Cenotes")
				So(table.CivName(1), ShouldEqual, "English")
				So(table.CivName(2), ShouldEqual, "Franks")
			})
		})

		Convey("When an entry has an empty name", func() {
			path := write("maps:\n  - id: 1\n    name: \"  \"\n")
			_, err := lookup.Load(ctx, path)

			Convey("Then it should fail with ErrLoadTable", func() {
				So(errors.Is(err, lookup.ErrLoadTable), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "maps[0]")
			})
		})

		Convey("When the file is not valid YAML", func() {
			path := write("maps: [")
			_, err := lookup.Load(ctx, path)

			Convey("Then it should fail with ErrLoadTable", func() {
				So(errors.Is(err, lookup.ErrLoadTable), ShouldBeTrue)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := lookup.Load(ctx, filepath.Join(dir, "missing.yaml"))

			Convey("Then it should fail with ErrLoadTable", func() {
				So(errors.Is(err, lookup.ErrLoadTable), ShouldBeTrue)
			})
		})
	})
}
