package lang

import "testing"

func TestFormat(t *testing.T) {
	src := `extend knight{function east(){this.move(EAST)} function west(){this.move(WEST);}}
function go(a,b){knight.move(a);knight.move(b)}
while(not knight.isNextTo(EAST,WALL)){knight.east()}
if(knight.isNextTo(NORTH,dragon)){knight.attack(NORTH)}else{if(mage.isNextTo(SOUTH,HOLE)){}}`

	want := `extend knight {
    function east() {
        this.move(EAST);
    }

    function west() {
        this.move(WEST);
    }
}

function go(a, b) {
    knight.move(a);
    knight.move(b);
}

while (not knight.isNextTo(EAST, WALL)) {
    knight.east();
}
if (knight.isNextTo(NORTH, dragon)) {
    knight.attack(NORTH);
} else {
    if (mage.isNextTo(SOUTH, HOLE)) {
    }
}
`

	got := FormatString(parse(t, src))
	if got != want {
		t.Errorf("FormatString() =\n%s\nwant:\n%s", got, want)
	}

	// formatting is idempotent and preserves structure
	again := FormatString(parse(t, got))
	if again != got {
		t.Errorf("second pass differs:\n%s", again)
	}

	if parse(t, got).String() != parse(t, src).String() {
		t.Error("formatted program differs from source")
	}
}
