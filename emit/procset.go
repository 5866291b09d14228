// Package emit's pstopsPrologue is the literal PStoPS procset body from
// psutils' psspec.c. It is reproduced bit-exact, stray mid-line %% comments
// and all: do not paraphrase or "fix" it.
package emit

const pstopsPrologue = `userdict begin[/showpage/erasepage/copypage]{dup where{pop dup load type/operatortype eq{ /PStoPSenablepage cvx 1 index load 1 array astore cvx {} bind /ifelse cvx 4 array astore cvx def}{pop}ifelse}{pop}ifelse}forall /PStoPSenablepage true def[/letter/legal/executivepage/a4/a4small/b5/com10envelope%nullify /monarchenvelope/c5envelope/dlenvelope/lettersmall/note%paper /folio/quarto/a5]{dup where{dup wcheck{exch{}put}%operators {pop{}def}ifelse}{pop}ifelse}forall/setpagedevice {pop}bind 1 index where{dup wcheck{3 1 roll put} {pop def}ifelse}{def}ifelse/PStoPSmatrix matrix currentmatrix def/PStoPSxform matrix def/PStoPSclip{clippath}def/defaultmatrix{PStoPSmatrix exch PStoPSxform exch concatmatrix}bind def/initmatrix{matrix defaultmatrix setmatrix}bind def/initclip[{matrix currentmatrix PStoPSmatrix setmatrix [{currentpoint}stopped{$error/newerror false put{newpath}} {/newpath cvx 3 1 roll/moveto cvx 4 array astore cvx}ifelse] {[/newpath cvx{/moveto cvx}{/lineto cvx} {/curveto cvx}{/closepath cvx}pathforall]cvx exch pop} stopped{$error/errorname get/invalidaccess eq{cleartomark $error/newerror false put cvx exec}{stop}ifelse}if}bind aload pop /initclip dup load dup type dup/operatortype eq{pop exch pop} {dup/arraytype eq exch/packedarraytype eq or  {dup xcheck{exch pop aload pop}{pop cvx}ifelse}  {pop cvx}ifelse}ifelse {newpath PStoPSclip clip newpath exec setmatrix} bind aload pop]cvx def/initgraphics{initmatrix newpath initclip 1 setlinewidth 0 setlinecap 0 setlinejoin []0 setdash 0 setgray 10 setmiterlimit}bind defend
`
