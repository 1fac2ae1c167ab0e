package services

import (
	"testing"
)

func TestVersionCreate_NumbersPerEntity(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	episodes := NewEpisodeService(db)
	sequences := NewSequenceService(db)
	shots := NewShotService(db)
	versions := NewVersionService(db, nil)

	episode, _ := episodes.Create(project.ID, &CreateEpisodeRequest{Name: "E01"})
	seq, _ := sequences.Create(project.ID, &CreateSequenceRequest{Name: "SEQ_010", EpisodeID: &episode.ID})
	shotA, _ := shots.Create(project.ID, &CreateShotRequest{SequenceID: seq.ID, Name: "SH010"})
	shotB, _ := shots.Create(project.ID, &CreateShotRequest{SequenceID: seq.ID, Name: "SH020"})

	for want := 1; want <= 3; want++ {
		v, err := versions.Create(project.ID, &CreateVersionRequest{ShotID: &shotA.ID}, owner.ID)
		if err != nil {
			t.Fatalf("create version: %v", err)
		}
		if v.Number != want {
			t.Errorf("shot A version number = %d, want %d", v.Number, want)
		}
	}

	// A different shot starts its own sequence at 1
	v, err := versions.Create(project.ID, &CreateVersionRequest{ShotID: &shotB.ID}, owner.ID)
	if err != nil {
		t.Fatalf("create version for shot B: %v", err)
	}
	if v.Number != 1 {
		t.Errorf("shot B version number = %d, want 1", v.Number)
	}
}

func TestVersionCreate_ExactlyOneTarget(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	versions := NewVersionService(db, nil)

	if _, err := versions.Create(project.ID, &CreateVersionRequest{}, owner.ID); err == nil {
		t.Error("version without a target should be rejected")
	}

	assets := NewAssetService(db)
	asset, _ := assets.Create(project.ID, &CreateAssetRequest{Name: "Hero", Type: "character"})

	episodes := NewEpisodeService(db)
	sequences := NewSequenceService(db)
	shots := NewShotService(db)
	episode, _ := episodes.Create(project.ID, &CreateEpisodeRequest{Name: "E01"})
	seq, _ := sequences.Create(project.ID, &CreateSequenceRequest{Name: "SEQ_010", EpisodeID: &episode.ID})
	shot, _ := shots.Create(project.ID, &CreateShotRequest{SequenceID: seq.ID, Name: "SH010"})

	if _, err := versions.Create(project.ID, &CreateVersionRequest{
		ShotID:  &shot.ID,
		AssetID: &asset.ID,
	}, owner.ID); err == nil {
		t.Error("version targeting both a shot and an asset should be rejected")
	}
}

func TestVersionCreate_ForeignEntityRejected(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	p1 := createTestProject(t, db, "PROJ_1", owner.ID)
	p2 := createTestProject(t, db, "PROJ_2", owner.ID)

	assets := NewAssetService(db)
	versions := NewVersionService(db, nil)

	foreign, _ := assets.Create(p2.ID, &CreateAssetRequest{Name: "Hero", Type: "prop"})

	if _, err := versions.Create(p1.ID, &CreateVersionRequest{AssetID: &foreign.ID}, owner.ID); err == nil {
		t.Error("version must not attach to an entity from another project")
	}
}
