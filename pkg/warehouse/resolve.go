package warehouse

import (
	"context"
	"fmt"

	"github.com/pipspect/pipspect/pkg/cache"
	"github.com/pipspect/pipspect/pkg/wheel"
)

// ResolveRelease fetches the release to operate on.
//
// With an explicit version the release is fetched directly, yanked or
// not; asking for a version by name is taken as intent. With an empty
// version the project's versions are walked newest first and the first
// release that isn't yanked wins.
func (c *Client) ResolveRelease(ctx context.Context, name, version string) (*Release, error) {
	if version != "" {
		return c.Release(ctx, name, version)
	}

	project, err := c.Project(ctx, name)
	if err != nil {
		return nil, err
	}

	ordered := project.OrderedVersions()
	for i := len(ordered) - 1; i >= 0; i-- {
		release, err := c.Release(ctx, name, ordered[i].Original())
		if err != nil {
			// A release that fails to fetch must not hide older
			// usable ones; skip it and keep walking.
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}
		if release.Info.Yanked {
			continue
		}
		return release, nil
	}
	return nil, fmt.Errorf("%w: no usable release for %s", cache.ErrNotFound, name)
}

// PickDistribution selects one artifact from a release.
//
// An empty pick chooses the most portable wheel. The literal "sdist"
// chooses the first source distribution. Anything else is parsed as a
// compatibility tag and matched exactly, preferring the greatest build
// marker. Returns [wheel.ErrNoMatch] when nothing qualifies.
func PickDistribution(release *Release, pick string) (*DistributionURL, error) {
	records := release.Records()

	var (
		match *wheel.Record
		err   error
	)
	switch pick {
	case "":
		match, err = wheel.SelectBest(records)
	case "sdist":
		match, err = wheel.SelectSource(records)
	default:
		tag, tagErr := wheel.ParseTag(pick)
		if tagErr != nil {
			return nil, tagErr
		}
		match, err = wheel.SelectExact(records, tag)
	}
	if err != nil {
		return nil, err
	}

	// Records is index-aligned with URLs, so the match maps back by
	// pointer identity.
	for i := range records {
		if match == &records[i] {
			return &release.URLs[i], nil
		}
	}
	return nil, wheel.ErrNoMatch
}
