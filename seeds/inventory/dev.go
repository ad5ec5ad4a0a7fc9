package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/torvik/inventory/internal/core"
)

const (
	devTokenName = "dev-admin"
	// Well-known key for local development only. Never use outside dev.
	devTokenKey = "0123456789abcdef0123456789abcdef01234567"
)

type fixturesFile struct {
	Regions []struct {
		Name   string `yaml:"name"`
		Slug   string `yaml:"slug"`
		Parent string `yaml:"parent"`
	} `yaml:"regions"`
	Tenants []struct {
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
	} `yaml:"tenants"`
	Sites []struct {
		Name            string `yaml:"name"`
		Slug            string `yaml:"slug"`
		Region          string `yaml:"region"`
		Tenant          string `yaml:"tenant"`
		Facility        string `yaml:"facility"`
		ASN             *int64 `yaml:"asn"`
		PhysicalAddress string `yaml:"physical_address"`
		ContactName     string `yaml:"contact_name"`
		ContactEmail    string `yaml:"contact_email"`
	} `yaml:"sites"`
	RackRoles []struct {
		Name  string `yaml:"name"`
		Slug  string `yaml:"slug"`
		Color string `yaml:"color"`
	} `yaml:"rack_roles"`
	Racks []struct {
		Site       string `yaml:"site"`
		Name       string `yaml:"name"`
		FacilityID string `yaml:"facility_id"`
		Role       string `yaml:"role"`
		Tenant     string `yaml:"tenant"`
		Width      int    `yaml:"width"`
		UHeight    int    `yaml:"u_height"`
	} `yaml:"racks"`
	Manufacturers []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"manufacturers"`
	DeviceTypes []struct {
		Manufacturer string `yaml:"manufacturer"`
		Model        string `yaml:"model"`
		Slug         string `yaml:"slug"`
		PartNumber   string `yaml:"part_number"`
		UHeight      int    `yaml:"u_height"`
		IsFullDepth  bool   `yaml:"is_full_depth"`
	} `yaml:"device_types"`
	DeviceRoles []struct {
		Name  string `yaml:"name"`
		Slug  string `yaml:"slug"`
		Color string `yaml:"color"`
	} `yaml:"device_roles"`
	Devices []struct {
		Name       string  `yaml:"name"`
		DeviceType string  `yaml:"device_type"`
		DeviceRole string  `yaml:"device_role"`
		Site       string  `yaml:"site"`
		Rack       string  `yaml:"rack"`
		Tenant     string  `yaml:"tenant"`
		Serial     string  `yaml:"serial"`
		Position   *int    `yaml:"position"`
		Face       *string `yaml:"face"`
		Status     string  `yaml:"status"`
	} `yaml:"devices"`
	VLANs []struct {
		Site   string `yaml:"site"`
		VID    int    `yaml:"vid"`
		Name   string `yaml:"name"`
		Tenant string `yaml:"tenant"`
		Status string `yaml:"status"`
	} `yaml:"vlans"`
	Prefixes []struct {
		Prefix      string `yaml:"prefix"`
		Site        string `yaml:"site"`
		VLANVID     *int   `yaml:"vlan_vid"`
		Tenant      string `yaml:"tenant"`
		Status      string `yaml:"status"`
		IsPool      bool   `yaml:"is_pool"`
		Description string `yaml:"description"`
	} `yaml:"prefixes"`
	Providers []struct {
		Name      string `yaml:"name"`
		Slug      string `yaml:"slug"`
		ASN       *int64 `yaml:"asn"`
		Account   string `yaml:"account"`
		PortalURL string `yaml:"portal_url"`
	} `yaml:"providers"`
	CircuitTypes []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"circuit_types"`
	Circuits []struct {
		CID         string  `yaml:"cid"`
		Provider    string  `yaml:"provider"`
		Type        string  `yaml:"type"`
		InstallDate *string `yaml:"install_date"`
		CommitRate  *int    `yaml:"commit_rate"`
		Description string  `yaml:"description"`
	} `yaml:"circuits"`
	CircuitTerminations []struct {
		Circuit       string `yaml:"circuit"`
		TermSide      string `yaml:"term_side"`
		Site          string `yaml:"site"`
		PortSpeed     int    `yaml:"port_speed"`
		UpstreamSpeed *int   `yaml:"upstream_speed"`
		XConnectID    string `yaml:"xconnect_id"`
	} `yaml:"circuit_terminations"`
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	fixtures, err := loadFixtures()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixtures: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Seeding inventory database...")

	if err := seed(ctx, pool, fixtures); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("  Creating dev API token...")
	if err := seedDevToken(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "seed dev token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Seed complete!")
	fmt.Println()
	fmt.Printf("  Dev token: %s\n", devTokenKey)
	fmt.Printf("  Try: curl -H 'Authorization: Token %s' http://localhost:8080/api/dcim/sites/\n", devTokenKey)
}

// loadFixtures reads fixtures.yaml next to this source file so the seeder
// works regardless of cwd.
func loadFixtures() (*fixturesFile, error) {
	_, thisFile, _, _ := runtime.Caller(0)
	yamlPath := filepath.Join(filepath.Dir(thisFile), "fixtures.yaml")

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("read fixtures.yaml: %w", err)
	}

	var f fixturesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures.yaml: %w", err)
	}
	return &f, nil
}

func seed(ctx context.Context, pool *pgxpool.Pool, f *fixturesFile) error {
	fmt.Println("  Upserting regions...")
	regionIDs := map[string]int64{}
	for _, r := range f.Regions {
		var parentID *int64
		if r.Parent != "" {
			id, ok := regionIDs[r.Parent]
			if !ok {
				return fmt.Errorf("region %s: unknown parent %s", r.Slug, r.Parent)
			}
			parentID = &id
		}
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO regions (name, slug, parent_id)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id, updated_at = now()
			 RETURNING id`,
			r.Name, r.Slug, parentID).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert region %s: %w", r.Slug, err)
		}
		regionIDs[r.Slug] = id
	}

	fmt.Println("  Upserting tenants...")
	tenantIDs := map[string]int64{}
	for _, t := range f.Tenants {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO tenants (name, slug, description)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, updated_at = now()
			 RETURNING id`,
			t.Name, t.Slug, t.Description).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert tenant %s: %w", t.Slug, err)
		}
		tenantIDs[t.Slug] = id
	}

	fmt.Println("  Upserting sites...")
	siteIDs := map[string]int64{}
	for _, s := range f.Sites {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO sites (name, slug, region_id, tenant_id, facility, asn,
				physical_address, contact_name, contact_email)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (slug) DO UPDATE SET
			   name = EXCLUDED.name,
			   region_id = EXCLUDED.region_id,
			   tenant_id = EXCLUDED.tenant_id,
			   facility = EXCLUDED.facility,
			   asn = EXCLUDED.asn,
			   updated_at = now()
			 RETURNING id`,
			s.Name, s.Slug, optionalID(regionIDs, s.Region), optionalID(tenantIDs, s.Tenant),
			s.Facility, s.ASN, s.PhysicalAddress, s.ContactName, s.ContactEmail).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert site %s: %w", s.Slug, err)
		}
		siteIDs[s.Slug] = id
	}

	fmt.Println("  Upserting rack roles...")
	rackRoleIDs := map[string]int64{}
	for _, rr := range f.RackRoles {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO rack_roles (name, slug, color)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color, updated_at = now()
			 RETURNING id`,
			rr.Name, rr.Slug, rr.Color).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert rack role %s: %w", rr.Slug, err)
		}
		rackRoleIDs[rr.Slug] = id
	}

	fmt.Println("  Upserting racks...")
	rackIDs := map[string]int64{}
	for _, rk := range f.Racks {
		siteID, ok := siteIDs[rk.Site]
		if !ok {
			return fmt.Errorf("rack %s: unknown site %s", rk.Name, rk.Site)
		}
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO racks (site_id, name, facility_id, tenant_id, role_id, width, u_height)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (site_id, name) DO UPDATE SET
			   facility_id = EXCLUDED.facility_id,
			   role_id = EXCLUDED.role_id,
			   width = EXCLUDED.width,
			   u_height = EXCLUDED.u_height,
			   updated_at = now()
			 RETURNING id`,
			siteID, rk.Name, rk.FacilityID, optionalID(tenantIDs, rk.Tenant),
			optionalID(rackRoleIDs, rk.Role), rk.Width, rk.UHeight).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert rack %s/%s: %w", rk.Site, rk.Name, err)
		}
		rackIDs[rk.Site+"/"+rk.Name] = id
	}

	fmt.Println("  Upserting manufacturers...")
	manufacturerIDs := map[string]int64{}
	for _, m := range f.Manufacturers {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO manufacturers (name, slug)
			 VALUES ($1, $2)
			 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
			 RETURNING id`,
			m.Name, m.Slug).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert manufacturer %s: %w", m.Slug, err)
		}
		manufacturerIDs[m.Slug] = id
	}

	fmt.Println("  Upserting device types...")
	deviceTypeIDs := map[string]int64{}
	for _, dt := range f.DeviceTypes {
		mfrID, ok := manufacturerIDs[dt.Manufacturer]
		if !ok {
			return fmt.Errorf("device type %s: unknown manufacturer %s", dt.Slug, dt.Manufacturer)
		}
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO device_types (manufacturer_id, model, slug, part_number, u_height, is_full_depth)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (manufacturer_id, slug) DO UPDATE SET
			   model = EXCLUDED.model,
			   part_number = EXCLUDED.part_number,
			   u_height = EXCLUDED.u_height,
			   is_full_depth = EXCLUDED.is_full_depth,
			   updated_at = now()
			 RETURNING id`,
			mfrID, dt.Model, dt.Slug, dt.PartNumber, dt.UHeight, dt.IsFullDepth).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert device type %s: %w", dt.Slug, err)
		}
		deviceTypeIDs[dt.Slug] = id
	}

	fmt.Println("  Upserting device roles...")
	deviceRoleIDs := map[string]int64{}
	for _, dr := range f.DeviceRoles {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO device_roles (name, slug, color)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color, updated_at = now()
			 RETURNING id`,
			dr.Name, dr.Slug, dr.Color).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert device role %s: %w", dr.Slug, err)
		}
		deviceRoleIDs[dr.Slug] = id
	}

	fmt.Println("  Upserting devices...")
	for _, d := range f.Devices {
		typeID, ok := deviceTypeIDs[d.DeviceType]
		if !ok {
			return fmt.Errorf("device %s: unknown device type %s", d.Name, d.DeviceType)
		}
		roleID, ok := deviceRoleIDs[d.DeviceRole]
		if !ok {
			return fmt.Errorf("device %s: unknown device role %s", d.Name, d.DeviceRole)
		}
		siteID, ok := siteIDs[d.Site]
		if !ok {
			return fmt.Errorf("device %s: unknown site %s", d.Name, d.Site)
		}
		var rackID *int64
		if d.Rack != "" {
			id, ok := rackIDs[d.Site+"/"+d.Rack]
			if !ok {
				return fmt.Errorf("device %s: unknown rack %s at site %s", d.Name, d.Rack, d.Site)
			}
			rackID = &id
		}

		// Devices have no natural unique key, so match existing rows by name.
		var existing int64
		err := pool.QueryRow(ctx, `SELECT id FROM devices WHERE name = $1`, d.Name).Scan(&existing)
		if err == nil {
			continue
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO devices (name, device_type_id, device_role_id, tenant_id, serial,
				site_id, rack_id, position, face, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			d.Name, typeID, roleID, optionalID(tenantIDs, d.Tenant), d.Serial,
			siteID, rackID, d.Position, d.Face, d.Status)
		if err != nil {
			return fmt.Errorf("insert device %s: %w", d.Name, err)
		}
	}

	fmt.Println("  Upserting VLANs...")
	vlanIDs := map[int]int64{}
	for _, v := range f.VLANs {
		siteID, ok := siteIDs[v.Site]
		if !ok {
			return fmt.Errorf("vlan %d: unknown site %s", v.VID, v.Site)
		}
		var id int64
		err := pool.QueryRow(ctx, `SELECT id FROM vlans WHERE site_id = $1 AND vid = $2`, siteID, v.VID).Scan(&id)
		if err != nil {
			err = pool.QueryRow(ctx,
				`INSERT INTO vlans (site_id, vid, name, tenant_id, status)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				siteID, v.VID, v.Name, optionalID(tenantIDs, v.Tenant), v.Status).Scan(&id)
			if err != nil {
				return fmt.Errorf("insert vlan %d: %w", v.VID, err)
			}
		}
		vlanIDs[v.VID] = id
	}

	fmt.Println("  Upserting prefixes...")
	for _, p := range f.Prefixes {
		var existing int64
		err := pool.QueryRow(ctx, `SELECT id FROM prefixes WHERE prefix = $1`, p.Prefix).Scan(&existing)
		if err == nil {
			continue
		}
		var vlanID *int64
		if p.VLANVID != nil {
			id, ok := vlanIDs[*p.VLANVID]
			if !ok {
				return fmt.Errorf("prefix %s: unknown vlan vid %d", p.Prefix, *p.VLANVID)
			}
			vlanID = &id
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO prefixes (prefix, site_id, vlan_id, tenant_id, status, is_pool, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.Prefix, optionalID(siteIDs, p.Site), vlanID, optionalID(tenantIDs, p.Tenant),
			p.Status, p.IsPool, p.Description)
		if err != nil {
			return fmt.Errorf("insert prefix %s: %w", p.Prefix, err)
		}
	}

	fmt.Println("  Upserting providers...")
	providerIDs := map[string]int64{}
	for _, pv := range f.Providers {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO providers (name, slug, asn, account, portal_url)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (slug) DO UPDATE SET
			   name = EXCLUDED.name,
			   asn = EXCLUDED.asn,
			   account = EXCLUDED.account,
			   portal_url = EXCLUDED.portal_url,
			   updated_at = now()
			 RETURNING id`,
			pv.Name, pv.Slug, pv.ASN, pv.Account, pv.PortalURL).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert provider %s: %w", pv.Slug, err)
		}
		providerIDs[pv.Slug] = id
	}

	fmt.Println("  Upserting circuit types...")
	circuitTypeIDs := map[string]int64{}
	for _, ct := range f.CircuitTypes {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO circuit_types (name, slug)
			 VALUES ($1, $2)
			 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
			 RETURNING id`,
			ct.Name, ct.Slug).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert circuit type %s: %w", ct.Slug, err)
		}
		circuitTypeIDs[ct.Slug] = id
	}

	fmt.Println("  Upserting circuits...")
	circuitIDs := map[string]int64{}
	for _, c := range f.Circuits {
		providerID, ok := providerIDs[c.Provider]
		if !ok {
			return fmt.Errorf("circuit %s: unknown provider %s", c.CID, c.Provider)
		}
		typeID, ok := circuitTypeIDs[c.Type]
		if !ok {
			return fmt.Errorf("circuit %s: unknown circuit type %s", c.CID, c.Type)
		}
		var installDate *time.Time
		if c.InstallDate != nil {
			d, err := time.Parse("2006-01-02", *c.InstallDate)
			if err != nil {
				return fmt.Errorf("circuit %s: bad install_date %q: %w", c.CID, *c.InstallDate, err)
			}
			installDate = &d
		}
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO circuits (cid, provider_id, type_id, install_date, commit_rate, description)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (provider_id, cid) DO UPDATE SET
			   type_id = EXCLUDED.type_id,
			   install_date = EXCLUDED.install_date,
			   commit_rate = EXCLUDED.commit_rate,
			   description = EXCLUDED.description,
			   updated_at = now()
			 RETURNING id`,
			c.CID, providerID, typeID, installDate, c.CommitRate, c.Description).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert circuit %s: %w", c.CID, err)
		}
		circuitIDs[c.CID] = id
	}

	fmt.Println("  Upserting circuit terminations...")
	for _, t := range f.CircuitTerminations {
		circuitID, ok := circuitIDs[t.Circuit]
		if !ok {
			return fmt.Errorf("termination: unknown circuit %s", t.Circuit)
		}
		siteID, ok := siteIDs[t.Site]
		if !ok {
			return fmt.Errorf("termination %s/%s: unknown site %s", t.Circuit, t.TermSide, t.Site)
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO circuit_terminations (circuit_id, term_side, site_id, port_speed, upstream_speed, xconnect_id)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (circuit_id, term_side) DO UPDATE SET
			   site_id = EXCLUDED.site_id,
			   port_speed = EXCLUDED.port_speed,
			   upstream_speed = EXCLUDED.upstream_speed,
			   xconnect_id = EXCLUDED.xconnect_id,
			   updated_at = now()`,
			circuitID, t.TermSide, siteID, t.PortSpeed, t.UpstreamSpeed, t.XConnectID)
		if err != nil {
			return fmt.Errorf("upsert termination %s/%s: %w", t.Circuit, t.TermSide, err)
		}
	}

	return nil
}

// seedDevToken inserts a write-enabled token with a well-known key so local
// clients can authenticate immediately. Skipped if it already exists.
func seedDevToken(ctx context.Context, pool *pgxpool.Pool) error {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tokens WHERE name = $1)`, devTokenName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check dev token: %w", err)
	}
	if exists {
		fmt.Println("    Dev token already present, skipping.")
		return nil
	}

	svc := core.NewTokenService(pool)
	if _, err := svc.CreateWithRawKey(ctx, devTokenName, devTokenKey, true); err != nil {
		return fmt.Errorf("create dev token: %w", err)
	}
	return nil
}

func optionalID(ids map[string]int64, slug string) *int64 {
	if slug == "" {
		return nil
	}
	if id, ok := ids[slug]; ok {
		return &id
	}
	return nil
}
